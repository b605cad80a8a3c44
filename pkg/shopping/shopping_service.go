package shopping

import (
	"context"
	"errors"
	"fmt"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"
	"pashameshi-backend/pkg/inventory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingService interface {
		AddShoppingItem(ctx context.Context, req domain.AddShoppingItemRequest, scope domain.Scope) (domain.ShoppingItemResponse, error)
		GetShoppingList(ctx context.Context, scope domain.Scope) ([]domain.ShoppingItemResponse, error)
		DeleteShoppingItem(ctx context.Context, id string, scope domain.Scope) error
		PromoteToStock(ctx context.Context, req domain.PromoteToStockRequest, scope domain.Scope) error
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		inventoryService   inventory.InventoryService
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, inventoryService inventory.InventoryService) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		inventoryService:   inventoryService,
	}
}

func (s *shoppingService) AddShoppingItem(ctx context.Context, req domain.AddShoppingItemRequest, scope domain.Scope) (domain.ShoppingItemResponse, error) {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	unit := req.Unit
	if unit == "" {
		unit = "個"
	}

	item := &entities.ShoppingListItem{
		ID:          uuid.New(),
		OwnerUserID: scope.OwnerUserID,
		GroupID:     scope.GroupID,
		Name:        req.Name,
		Quantity:    quantity,
		Unit:        unit,
	}

	if err := s.shoppingRepository.CreateShoppingItem(ctx, item); err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	return domain.ShoppingItemResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		Shared:    item.GroupID != nil,
		CreatedAt: item.CreatedAt,
	}, nil
}

func (s *shoppingService) GetShoppingList(ctx context.Context, scope domain.Scope) ([]domain.ShoppingItemResponse, error) {
	items, err := s.shoppingRepository.GetShoppingItems(ctx, scope)
	if err != nil {
		return nil, err
	}

	var response []domain.ShoppingItemResponse
	for _, item := range items {
		response = append(response, domain.ShoppingItemResponse{
			ID:        item.ID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Shared:    item.GroupID != nil,
			CreatedAt: item.CreatedAt,
		})
	}

	return response, nil
}

func (s *shoppingService) DeleteShoppingItem(ctx context.Context, id string, scope domain.Scope) error {
	item, err := s.shoppingRepository.GetShoppingItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShoppingItemNotFound
		}
		return err
	}

	if !scopeAllows(item, scope) {
		return domain.ErrUnauthorizedAccess
	}

	return s.shoppingRepository.DeleteShoppingItem(ctx, id)
}

// PromoteToStock hands a bought shopping-list entry over to the inventory:
// the same find-or-increment merge as photo registration, with the storage
// type and expiry date the user chose, then deletion of the source entry. The
// two writes are one hand-off in intent but not one transaction; a failed
// deletion after a committed merge surfaces as ErrPromotionCleanupFailed so
// the caller can tell the user the item now sits in both lists.
func (s *shoppingService) PromoteToStock(ctx context.Context, req domain.PromoteToStockRequest, scope domain.Scope) error {
	item, err := s.shoppingRepository.GetShoppingItemByID(ctx, req.ShoppingItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShoppingItemNotFound
		}
		return err
	}

	if !scopeAllows(item, scope) {
		return domain.ErrUnauthorizedAccess
	}

	merge := domain.MergeIngredientRequest{
		AnalyzedIngredient: domain.AnalyzedIngredient{
			Name:       item.Name,
			Genre:      "その他",
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			ExpiryDate: req.ExpiryDate,
		},
		StorageType: req.StorageType,
	}

	if err := s.inventoryService.MergeIngredient(ctx, merge, scope); err != nil {
		return err
	}

	if err := s.shoppingRepository.DeleteShoppingItem(ctx, item.ID.String()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPromotionCleanupFailed, err)
	}

	return nil
}

func scopeAllows(item *entities.ShoppingListItem, scope domain.Scope) bool {
	if item.GroupID != nil {
		return scope.GroupID != nil && *item.GroupID == *scope.GroupID
	}
	return item.OwnerUserID == scope.OwnerUserID
}
