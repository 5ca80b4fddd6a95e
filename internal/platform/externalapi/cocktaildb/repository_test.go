package cocktaildb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewCocktailDBCatalog(t *testing.T) {
	t.Parallel()

	cfg := Config{
		APIKey:  "1",
		BaseURL: "https://api.test.com",
		Timeout: 10 * time.Second,
	}
	client := &http.Client{}

	catalog := NewCocktailDBCatalog(cfg, client)

	if catalog == nil {
		t.Fatal("expected non-nil catalog")
	}
	if catalog.cfg.APIKey != cfg.APIKey {
		t.Errorf("expected API key %q, got %q", cfg.APIKey, catalog.cfg.APIKey)
	}
}

func TestCocktailDBCatalog_FetchByFirstLetter_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request path and parameters
		if !strings.HasSuffix(r.URL.Path, "/1/search.php") {
			t.Errorf("expected path ending in /1/search.php, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("f") != "m" {
			t.Errorf("expected f=m, got %s", r.URL.Query().Get("f"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"drinks": [
				{
					"idDrink": "11007",
					"strDrink": "Margarita",
					"strCategory": "Ordinary Drink",
					"strAlcoholic": "Alcoholic",
					"strGlass": "Cocktail glass",
					"strInstructions": "Rub the rim of the glass with the lime slice.",
					"strDrinkThumb": "https://example.com/margarita.jpg"
				},
				{
					"idDrink": "11000",
					"strDrink": "Mojito",
					"strCategory": "Cocktail",
					"strAlcoholic": "Alcoholic",
					"strGlass": "Highball glass",
					"strInstructions": "Muddle mint leaves with sugar and lime juice.",
					"strDrinkThumb": "https://example.com/mojito.jpg"
				}
			]
		}`))
	}))
	defer server.Close()

	cfg := Config{
		APIKey:  "1",
		BaseURL: server.URL,
	}
	catalog := NewCocktailDBCatalog(cfg, server.Client())

	drinks, err := catalog.FetchByFirstLetter(context.Background(), "m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(drinks) != 2 {
		t.Fatalf("expected 2 drinks, got %d", len(drinks))
	}

	// Check first drink
	if drinks[0].Name != "Margarita" {
		t.Errorf("expected name Margarita, got %q", drinks[0].Name)
	}
	if drinks[0].SourceID == nil || *drinks[0].SourceID != "11007" {
		t.Errorf("expected source ID 11007, got %v", drinks[0].SourceID)
	}
	if !drinks[0].Alcoholic {
		t.Error("expected Margarita to be alcoholic")
	}
	if drinks[0].Glass != "Cocktail glass" {
		t.Errorf("expected glass %q, got %q", "Cocktail glass", drinks[0].Glass)
	}
}

func TestCocktailDBCatalog_FetchByFirstLetter_NullDrinks(t *testing.T) {
	t.Parallel()

	// The API returns {"drinks": null} when no names start with the letter
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"drinks": null}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "1", BaseURL: server.URL}
	catalog := NewCocktailDBCatalog(cfg, server.Client())

	drinks, err := catalog.FetchByFirstLetter(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drinks) != 0 {
		t.Errorf("expected no drinks, got %d", len(drinks))
	}
}

func TestCocktailDBCatalog_FetchByFirstLetter_NonAlcoholic(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"drinks": [
				{
					"idDrink": "12776",
					"strDrink": "Afterglow",
					"strCategory": "Punch / Party Drink",
					"strAlcoholic": "Non alcoholic",
					"strGlass": "Highball Glass",
					"strInstructions": "Mix and pour over ice.",
					"strDrinkThumb": "https://example.com/afterglow.jpg"
				}
			]
		}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "1", BaseURL: server.URL}
	catalog := NewCocktailDBCatalog(cfg, server.Client())

	drinks, err := catalog.FetchByFirstLetter(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drinks) != 1 {
		t.Fatalf("expected 1 drink, got %d", len(drinks))
	}
	if drinks[0].Alcoholic {
		t.Error("expected Afterglow to be non-alcoholic")
	}
}

func TestCocktailDBCatalog_FetchByFirstLetter_SkipsIncompleteEntries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"drinks": [
				{"idDrink": "", "strDrink": "No ID"},
				{"idDrink": "123", "strDrink": ""},
				{"idDrink": "456", "strDrink": "Valid"}
			]
		}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "1", BaseURL: server.URL}
	catalog := NewCocktailDBCatalog(cfg, server.Client())

	drinks, err := catalog.FetchByFirstLetter(context.Background(), "v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drinks) != 1 {
		t.Fatalf("expected 1 drink, got %d", len(drinks))
	}
	if drinks[0].Name != "Valid" {
		t.Errorf("expected name Valid, got %q", drinks[0].Name)
	}
}

func TestCocktailDBCatalog_FetchByFirstLetter_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"not found", http.StatusNotFound},
		{"internal server error", http.StatusInternalServerError},
		{"service unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			cfg := Config{APIKey: "1", BaseURL: server.URL}
			catalog := NewCocktailDBCatalog(cfg, server.Client())

			_, err := catalog.FetchByFirstLetter(context.Background(), "a")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "cocktaildb http") {
				t.Errorf("expected http status error, got %v", err)
			}
		})
	}
}

func TestCocktailDBCatalog_FetchByFirstLetter_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "1", BaseURL: server.URL}
	catalog := NewCocktailDBCatalog(cfg, server.Client())

	_, err := catalog.FetchByFirstLetter(context.Background(), "a")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCocktailDBCatalog_FetchByFirstLetter_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"drinks": null}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "1", BaseURL: server.URL}
	catalog := NewCocktailDBCatalog(cfg, server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.FetchByFirstLetter(ctx, "a")
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}
