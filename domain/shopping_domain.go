package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddShoppingItem    = "shopping item added successfully"
	MessageSuccessGetShoppingList    = "shopping list retrieved successfully"
	MessageSuccessDeleteShoppingItem = "shopping item deleted successfully"
	MessageSuccessPromoteToStock     = "shopping item moved to stock successfully"

	MessageFailedAddShoppingItem    = "failed to add shopping item"
	MessageFailedGetShoppingList    = "failed to retrieve shopping list"
	MessageFailedDeleteShoppingItem = "failed to delete shopping item"
	MessageFailedPromoteToStock     = "failed to move shopping item to stock"
	MessagePromotionCleanupNeeded   = "item moved to stock but could not be removed from the shopping list"

	ErrShoppingItemNotFound = errors.New("shopping item not found")

	// ErrPromotionCleanupFailed means the merge into stock committed but the
	// source shopping-list row could not be deleted, so the item now appears
	// in both lists until the user removes it manually.
	ErrPromotionCleanupFailed = errors.New("shopping item promoted but not removed from list")
)

type (
	AddShoppingItemRequest struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit     string  `json:"unit"`
	}

	ShoppingItemResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Quantity  float64   `json:"quantity"`
		Unit      string    `json:"unit"`
		Shared    bool      `json:"shared"`
		CreatedAt time.Time `json:"created_at"`
	}

	PromoteToStockRequest struct {
		ShoppingItemID string `json:"shopping_item_id" validate:"required,uuid"`
		StorageType    string `json:"storage_type" validate:"required,oneof=refrigerated frozen ambient"`
		ExpiryDate     string `json:"expiry_date" validate:"required"`
	}
)
