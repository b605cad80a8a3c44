package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAnalyzeIngredient = "ingredient analyzed successfully"
	MessageSuccessMergeIngredient   = "ingredient registered successfully"
	MessageSuccessGetStockItems     = "stock items retrieved successfully"
	MessageSuccessDeleteStockItem   = "stock item deleted successfully"
	MessageSuccessUploadStockImage  = "stock image uploaded successfully"

	MessageFailedAnalyzeIngredient = "failed to analyze ingredient"
	MessageFailedMergeIngredient   = "failed to register ingredient"
	MessageFailedGetStockItems     = "failed to retrieve stock items"
	MessageFailedDeleteStockItem   = "failed to delete stock item"
	MessageFailedUploadStockImage  = "failed to upload stock image"

	ErrStockItemNotFound  = errors.New("stock item not found")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrUnauthorizedAccess = errors.New("unauthorized access to stock item")
)

const (
	ExpiryStatusSafe    = "safe"
	ExpiryStatusUrgent  = "urgent"
	ExpiryStatusExpired = "expired"
)

type (
	// AnalyzedIngredient is the structured record the vision classifier
	// produces from a photo, with default substitution already applied at the
	// boundary: quantity 1 and unit "個" when missing, expiry date derived
	// from the estimated shelf-life days (3 when missing).
	AnalyzedIngredient struct {
		Name       string  `json:"name" validate:"required"`
		Genre      string  `json:"genre"`
		Quantity   float64 `json:"quantity" validate:"gt=0"`
		Unit       string  `json:"unit" validate:"required"`
		ExpiryDate string  `json:"expiry_date" validate:"required"`
	}

	AnalyzeIngredientRequest struct {
		Image string `json:"image" validate:"required"`
	}

	MergeIngredientRequest struct {
		AnalyzedIngredient
		StorageType string `json:"storage_type" validate:"required,oneof=refrigerated frozen ambient"`
	}

	StockItemResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Genre        string    `json:"genre"`
		Quantity     float64   `json:"quantity"`
		Unit         string    `json:"unit"`
		ExpiryDate   time.Time `json:"expiry_date"`
		ExpiryStatus string    `json:"expiry_status"`
		StorageType  string    `json:"storage_type"`
		ImageURL     string    `json:"image_url,omitempty"`
		Shared       bool      `json:"shared"`
		CreatedAt    time.Time `json:"created_at"`
	}

	UploadStockImageRequest struct {
		StockItemID string                `json:"stock_item_id" form:"stock_item_id" validate:"required,uuid"`
		Image       *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ConsumeForRecipeRequest struct {
		Ingredients []string `json:"ingredients" validate:"required,min=1"`
	}

	ConsumeForRecipeResponse struct {
		UpdatedItems int `json:"updated_items"`
		RemovedItems int `json:"removed_items"`
	}
)
