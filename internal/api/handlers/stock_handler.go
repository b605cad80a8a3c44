package handlers

import (
	"errors"

	"pashameshi-backend/domain"
	"pashameshi-backend/internal/api/presenters"
	"pashameshi-backend/pkg/inventory"
	"pashameshi-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StockHandler interface {
		AnalyzeIngredient(c *fiber.Ctx) error
		MergeIngredient(c *fiber.Ctx) error
		GetStockItems(c *fiber.Ctx) error
		DeleteStockItem(c *fiber.Ctx) error
		UploadStockImage(c *fiber.Ctx) error
	}

	stockHandler struct {
		inventoryService inventory.InventoryService
		userService      user.UserService
		validator        *validator.Validate
	}
)

func NewStockHandler(inventoryService inventory.InventoryService, userService user.UserService, validator *validator.Validate) StockHandler {
	return &stockHandler{
		inventoryService: inventoryService,
		userService:      userService,
		validator:        validator,
	}
}

func (h *stockHandler) AnalyzeIngredient(c *fiber.Ctx) error {
	req := new(domain.AnalyzeIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzeIngredient, err)
	}

	res, err := h.inventoryService.AnalyzeIngredient(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzeIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalyzeIngredient)
}

func (h *stockHandler) MergeIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MergeIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMergeIngredient, err)
	}

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedMergeIngredient, err)
	}

	if err := h.inventoryService.MergeIngredient(c.Context(), *req, scope); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMergeIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessMergeIngredient)
}

func (h *stockHandler) GetStockItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	storageType := c.Query("storage_type", "all")

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetStockItems, err)
	}

	items, err := h.inventoryService.GetStockItems(c.Context(), scope, storageType)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStockItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items":  items,
		"shared": scope.Shared(),
	}, fiber.StatusOK, domain.MessageSuccessGetStockItems)
}

func (h *stockHandler) DeleteStockItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteStockItem, err)
	}

	if err := h.inventoryService.DeleteStockItem(c.Context(), itemID, scope); err != nil {
		if errors.Is(err, domain.ErrStockItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteStockItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteStockItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteStockItem)
}

func (h *stockHandler) UploadStockImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadStockImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadStockImage, err)
	}

	scope, err := h.userService.ResolveScope(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUploadStockImage, err)
	}

	if err := h.inventoryService.UploadStockImage(c.Context(), *req, scope); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadStockImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadStockImage)
}
