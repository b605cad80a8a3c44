package handlers

import (
	"errors"

	"pashameshi-backend/domain"
	"pashameshi-backend/internal/api/presenters"
	"pashameshi-backend/pkg/shopping"
	"pashameshi-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		AddShoppingItem(c *fiber.Ctx) error
		GetShoppingList(c *fiber.Ctx) error
		DeleteShoppingItem(c *fiber.Ctx) error
		PromoteToStock(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
		userService     user.UserService
		validator       *validator.Validate
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService, userService user.UserService, validator *validator.Validate) ShoppingHandler {
	return &shoppingHandler{
		shoppingService: shoppingService,
		userService:     userService,
		validator:       validator,
	}
}

func (h *shoppingHandler) AddShoppingItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddShoppingItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShoppingItem, err)
	}

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedAddShoppingItem, err)
	}

	res, err := h.shoppingService.AddShoppingItem(c.Context(), *req, scope)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShoppingItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShoppingItem)
}

func (h *shoppingHandler) GetShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetShoppingList, err)
	}

	items, err := h.shoppingService.GetShoppingList(c.Context(), scope)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShoppingList, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items":  items,
		"shared": scope.Shared(),
	}, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *shoppingHandler) DeleteShoppingItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteShoppingItem, err)
	}

	if err := h.shoppingService.DeleteShoppingItem(c.Context(), itemID, scope); err != nil {
		if errors.Is(err, domain.ErrShoppingItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteShoppingItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteShoppingItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteShoppingItem)
}

func (h *shoppingHandler) PromoteToStock(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.PromoteToStockRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPromoteToStock, err)
	}

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedPromoteToStock, err)
	}

	if err := h.shoppingService.PromoteToStock(c.Context(), *req, scope); err != nil {
		// The merge committed but the list entry survived: report it apart
		// from ordinary failures so the client can prompt manual cleanup.
		if errors.Is(err, domain.ErrPromotionCleanupFailed) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessagePromotionCleanupNeeded, err)
		}
		if errors.Is(err, domain.ErrShoppingItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedPromoteToStock, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPromoteToStock, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessPromoteToStock)
}
