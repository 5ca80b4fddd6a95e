package cocktaildb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"cocktail_backend/internal/feature/drinks/domain/entity"
	"cocktail_backend/internal/feature/drinks/usecase"
	"cocktail_backend/internal/platform/externalapi/cocktaildb/dto"
)

// CocktailDBCatalog はTheCocktailDB外部APIからドリンクデータを取得するCatalogSource実装です。
type CocktailDBCatalog struct {
	cfg    Config
	client *http.Client
}

// CocktailDBCatalogがCatalogSourceを実装していることをコンパイル時に検証します。
var _ usecase.CatalogSource = (*CocktailDBCatalog)(nil)

// NewCocktailDBCatalog は指定された設定とHTTPクライアントでCocktailDBCatalogの新しいインスタンスを生成します。
func NewCocktailDBCatalog(cfg Config, client *http.Client) *CocktailDBCatalog {
	return &CocktailDBCatalog{cfg: cfg, client: client}
}

// FetchByFirstLetter は指定の頭文字で始まるドリンク一覧をTheCocktailDB APIから取得し、
// entity.Drinkのスライスとして返します。該当なしの場合は空のスライスを返します。
func (c *CocktailDBCatalog) FetchByFirstLetter(ctx context.Context, letter string) ([]entity.Drink, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("f", letter)

	// URLを生成（APIキーはパスセグメント）
	u := fmt.Sprintf("%s/%s/search.php?%s", c.cfg.BaseURL, c.cfg.APIKey, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエストを実行
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("cocktaildb http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	drinks := make([]entity.Drink, 0, len(body.Drinks))
	for _, v := range body.Drinks {
		if v.ID == "" || v.Name == "" {
			continue
		}
		sourceID := v.ID

		// ドメインエンティティに変換
		drinks = append(drinks, entity.Drink{
			SourceID:     &sourceID,
			Name:         v.Name,
			Category:     v.Category,
			Alcoholic:    strings.EqualFold(v.Alcoholic, "Alcoholic"),
			Glass:        v.Glass,
			Instructions: v.Instructions,
			ImageURL:     v.Thumb,
		})
	}
	return drinks, nil
}
