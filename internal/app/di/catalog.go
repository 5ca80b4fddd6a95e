// Package di provides dependency injection factories for creating application components.
package di

import (
	"cocktail_backend/internal/platform/externalapi/cocktaildb"
	infrahttp "cocktail_backend/internal/platform/http"
)

// NewCatalog creates a fully configured CocktailDBCatalog with HTTP client.
func NewCatalog() *cocktaildb.CocktailDBCatalog {
	cfg := cocktaildb.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return cocktaildb.NewCocktailDBCatalog(cfg, httpClient)
}
