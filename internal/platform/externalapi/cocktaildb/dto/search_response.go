// Package dto defines data transfer objects for TheCocktailDB API responses.
package dto

// SearchResponse represents the JSON response from the search.php endpoint.
// The drinks field is null (not an empty array) when nothing matches.
type SearchResponse struct {
	Drinks []struct {
		ID           string `json:"idDrink"`
		Name         string `json:"strDrink"`
		Category     string `json:"strCategory"`
		Alcoholic    string `json:"strAlcoholic"`
		Glass        string `json:"strGlass"`
		Instructions string `json:"strInstructions"`
		Thumb        string `json:"strDrinkThumb"`
	} `json:"drinks"`
}
