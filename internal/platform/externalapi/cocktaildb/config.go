// Package cocktaildb provides a client for TheCocktailDB catalog API.
package cocktaildb

import (
	"os"
	"time"
)

// Config holds configuration for TheCocktailDB API client.
type Config struct {
	APIKey  string        // API key, "1" is the public test key
	BaseURL string        // Base URL for the API (e.g., "https://www.thecocktaildb.com/api/json/v1")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads TheCocktailDB configuration from environment variables.
func LoadConfig() Config {
	key := os.Getenv("COCKTAILDB_API_KEY")
	if key == "" {
		key = "1"
	}
	return Config{
		APIKey:  key,
		BaseURL: os.Getenv("COCKTAILDB_BASE_URL"),
		Timeout: 10 * time.Second,
	}
}
