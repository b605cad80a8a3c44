package recipe

import (
	"context"

	"pashameshi-backend/domain"
	"pashameshi-backend/pkg/groq"
	"pashameshi-backend/pkg/inventory"
)

type (
	RecipeService interface {
		SuggestRecipe(ctx context.Context, scope domain.Scope) (domain.GeneratedRecipe, error)
		FinishCooking(ctx context.Context, req domain.ConsumeForRecipeRequest, scope domain.Scope) (domain.ConsumeForRecipeResponse, error)
	}

	recipeService struct {
		generator        groq.GroqService
		inventoryService inventory.InventoryService
	}
)

func NewRecipeService(generator groq.GroqService, inventoryService inventory.InventoryService) RecipeService {
	return &recipeService{
		generator:        generator,
		inventoryService: inventoryService,
	}
}

func (s *recipeService) SuggestRecipe(ctx context.Context, scope domain.Scope) (domain.GeneratedRecipe, error) {
	items, err := s.inventoryService.GetStockItems(ctx, scope, "")
	if err != nil {
		return domain.GeneratedRecipe{}, err
	}

	if len(items) == 0 {
		return domain.GeneratedRecipe{}, domain.ErrNoIngredients
	}

	stock := make([]domain.RecipeStockItem, 0, len(items))
	for _, item := range items {
		stock = append(stock, domain.RecipeStockItem{
			Name:     item.Name,
			Genre:    item.Genre,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		})
	}

	return s.generator.GenerateRecipe(ctx, stock)
}

// FinishCooking runs consumption accounting for a recipe the user reports as
// cooked. The recipe's ingredient lines are free-form generator output, so
// the inventory side matches them by substring containment rather than
// exact name equality.
func (s *recipeService) FinishCooking(ctx context.Context, req domain.ConsumeForRecipeRequest, scope domain.Scope) (domain.ConsumeForRecipeResponse, error) {
	return s.inventoryService.ConsumeForRecipe(ctx, req.Ingredients, scope)
}
