package handlers

import (
	"errors"

	"pashameshi-backend/domain"
	"pashameshi-backend/internal/api/presenters"
	"pashameshi-backend/pkg/recipe"
	"pashameshi-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		SuggestRecipe(c *fiber.Ctx) error
		FinishCooking(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		userService   user.UserService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, userService user.UserService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		userService:   userService,
		validator:     validator,
	}
}

func (h *recipeHandler) SuggestRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedSuggestRecipe, err)
	}

	res, err := h.recipeService.SuggestRecipe(c.Context(), scope)
	if err != nil {
		if errors.Is(err, domain.ErrNoIngredients) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSuggestRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSuggestRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestRecipe)
}

func (h *recipeHandler) FinishCooking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ConsumeForRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFinishCooking, err)
	}

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedFinishCooking, err)
	}

	res, err := h.recipeService.FinishCooking(c.Context(), *req, scope)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFinishCooking, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessFinishCooking)
}
