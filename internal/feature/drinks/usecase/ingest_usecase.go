package usecase

import (
	"context"
	"log/slog"

	"cocktail_backend/internal/feature/drinks/domain/entity"
	"cocktail_backend/internal/shared/ratelimiter"
)

// ingestLetters はカタログ取得の対象となる頭文字のリストです。
// 外部APIは頭文字単位の検索のみを提供します。
const ingestLetters = "abcdefghijklmnopqrstuvwxyz"

// CatalogSource はドリンクデータを取得する外部カタログのインターフェイスです。
// 外部 API の実装を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CatalogSource interface {
	FetchByFirstLetter(ctx context.Context, letter string) ([]entity.Drink, error)
}

// IngestUsecase は外部カタログからドリンクを取得し、データベースに永続化するユースケースを定義します。
type IngestUsecase struct {
	source      CatalogSource
	drinks      DrinkRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(source CatalogSource, drinks DrinkRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{source: source, drinks: drinks, rateLimiter: rateLimiter}
}

// ingestOne は指定の頭文字のドリンク一覧を外部カタログから取得し、
// データベースに一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, letter string) error {
	ds, err := iu.source.FetchByFirstLetter(ctx, letter)
	if err != nil {
		return err
	}
	return iu.drinks.UpsertBatch(ctx, ds)
}

// IngestAll は全頭文字のドリンクを取得しデータベースに永続化します。
// 外部APIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
func (iu *IngestUsecase) IngestAll(ctx context.Context) error {
	for _, r := range ingestLetters {
		iu.rateLimiter.WaitIfNeeded()
		if err := iu.ingestOne(ctx, string(r)); err != nil {
			// 1つの頭文字でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			slog.Error("failed to ingest drinks", "letter", string(r), "error", err)
			continue
		}
	}
	return nil
}
