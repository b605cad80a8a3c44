package domain

import (
	"errors"
)

var (
	MessageSuccessSuggestRecipe = "recipe suggested successfully"
	MessageSuccessFinishCooking = "stock consumed for recipe successfully"

	MessageFailedSuggestRecipe = "failed to suggest recipe"
	MessageFailedFinishCooking = "failed to consume stock for recipe"

	ErrNoIngredients = errors.New("no ingredients available for recipe generation")
	ErrGroqAPIFailed = errors.New("groq API processing failed")
)

type (
	// RecipeStockItem is the slice of stock the generator sees.
	RecipeStockItem struct {
		Name     string  `json:"name"`
		Genre    string  `json:"genre"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}

	// GeneratedRecipe is the generator's structured output. Only Ingredients
	// feeds the consumption step; the rest is passed through for display.
	GeneratedRecipe struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Ingredients []string `json:"ingredients"`
		Steps       []string `json:"steps"`
		Point       string   `json:"point"`
	}
)
