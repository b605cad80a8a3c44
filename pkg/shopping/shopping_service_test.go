package shopping

import (
	"context"
	"errors"
	"testing"
	"time"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"
	"pashameshi-backend/pkg/inventory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeShoppingRepository struct {
	items     map[uuid.UUID]*entities.ShoppingListItem
	deleteErr error
}

func newFakeShoppingRepository() *fakeShoppingRepository {
	return &fakeShoppingRepository{items: make(map[uuid.UUID]*entities.ShoppingListItem)}
}

func (f *fakeShoppingRepository) CreateShoppingItem(_ context.Context, item *entities.ShoppingListItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeShoppingRepository) GetShoppingItemByID(_ context.Context, id string) (*entities.ShoppingListItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeShoppingRepository) GetShoppingItems(_ context.Context, scope domain.Scope) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem
	for _, item := range f.items {
		if scope.Shared() {
			if item.GroupID != nil && *item.GroupID == *scope.GroupID {
				items = append(items, item)
			}
		} else if item.OwnerUserID == scope.OwnerUserID && item.GroupID == nil {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeShoppingRepository) DeleteShoppingItem(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(f.items, itemID)
	return nil
}

// fakeStockRepository backs a real inventory service so promotion exercises
// the actual merge policy.
type fakeStockRepository struct {
	items map[uuid.UUID]*entities.StockItem
}

func newFakeStockRepository() *fakeStockRepository {
	return &fakeStockRepository{items: make(map[uuid.UUID]*entities.StockItem)}
}

func (f *fakeStockRepository) CreateStockItem(_ context.Context, item *entities.StockItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeStockRepository) GetStockItemByID(_ context.Context, id string) (*entities.StockItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeStockRepository) UpdateStockItem(_ context.Context, item *entities.StockItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeStockRepository) DeleteStockItem(_ context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeStockRepository) GetStockItems(_ context.Context, scope domain.Scope, _ string) ([]*entities.StockItem, error) {
	var items []*entities.StockItem
	for _, item := range f.items {
		if stockInScope(item, scope) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeStockRepository) FindMatch(_ context.Context, scope domain.Scope, name, storageType string, expiryDate time.Time) (*entities.StockItem, error) {
	for _, item := range f.items {
		if stockInScope(item, scope) && item.Name == name && item.StorageType == storageType && item.ExpiryDate.Equal(expiryDate) {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStockRepository) WithMergeLock(_ context.Context, _ string, fn func(inventory.StockRepository) error) error {
	return fn(f)
}

func stockInScope(item *entities.StockItem, scope domain.Scope) bool {
	if scope.Shared() {
		return item.GroupID != nil && *item.GroupID == *scope.GroupID
	}
	return item.OwnerUserID == scope.OwnerUserID && item.GroupID == nil
}

func newTestService() (*fakeShoppingRepository, *fakeStockRepository, ShoppingService) {
	shoppingRepo := newFakeShoppingRepository()
	stockRepo := newFakeStockRepository()
	inventoryService := inventory.NewInventoryService(stockRepo, nil, nil)
	return shoppingRepo, stockRepo, NewShoppingService(shoppingRepo, inventoryService)
}

func TestAddShoppingItemAppliesDefaults(t *testing.T) {
	_, _, service := newTestService()
	scope := domain.Scope{OwnerUserID: uuid.New()}

	res, err := service.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "牛乳"}, scope)
	if err != nil {
		t.Fatalf("AddShoppingItem failed: %v", err)
	}
	if res.Quantity != 1 {
		t.Errorf("quantity = %v, want default 1", res.Quantity)
	}
	if res.Unit != "個" {
		t.Errorf("unit = %q, want default 個", res.Unit)
	}
	if res.Shared {
		t.Errorf("personal scope entry must not be shared")
	}
}

func TestPromoteToStockMovesItem(t *testing.T) {
	shoppingRepo, stockRepo, service := newTestService()
	scope := domain.Scope{OwnerUserID: uuid.New()}
	ctx := context.Background()

	added, err := service.AddShoppingItem(ctx, domain.AddShoppingItemRequest{Name: "豚肉", Quantity: 300, Unit: "g"}, scope)
	if err != nil {
		t.Fatalf("AddShoppingItem failed: %v", err)
	}

	req := domain.PromoteToStockRequest{
		ShoppingItemID: added.ID,
		StorageType:    entities.StorageFrozen,
		ExpiryDate:     "2025-07-01",
	}
	if err := service.PromoteToStock(ctx, req, scope); err != nil {
		t.Fatalf("PromoteToStock failed: %v", err)
	}

	if len(shoppingRepo.items) != 0 {
		t.Errorf("promoted entry must leave the shopping list")
	}
	if len(stockRepo.items) != 1 {
		t.Fatalf("expected 1 stock item, got %d", len(stockRepo.items))
	}
	for _, item := range stockRepo.items {
		if item.Name != "豚肉" || item.Quantity != 300 || item.StorageType != entities.StorageFrozen {
			t.Errorf("unexpected stock item: %+v", item)
		}
	}
}

func TestPromoteToStockMergesIntoExistingStock(t *testing.T) {
	_, stockRepo, service := newTestService()
	scope := domain.Scope{OwnerUserID: uuid.New()}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		added, err := service.AddShoppingItem(ctx, domain.AddShoppingItemRequest{Name: "卵", Quantity: 6, Unit: "個"}, scope)
		if err != nil {
			t.Fatalf("AddShoppingItem failed: %v", err)
		}
		req := domain.PromoteToStockRequest{
			ShoppingItemID: added.ID,
			StorageType:    entities.StorageRefrigerated,
			ExpiryDate:     "2025-07-01",
		}
		if err := service.PromoteToStock(ctx, req, scope); err != nil {
			t.Fatalf("PromoteToStock failed: %v", err)
		}
	}

	if len(stockRepo.items) != 1 {
		t.Fatalf("matching promotions must merge into one stock item, got %d", len(stockRepo.items))
	}
	for _, item := range stockRepo.items {
		if item.Quantity != 12 {
			t.Errorf("quantity = %v, want 12", item.Quantity)
		}
	}
}

func TestPromoteToStockReportsCleanupFailure(t *testing.T) {
	shoppingRepo, stockRepo, service := newTestService()
	scope := domain.Scope{OwnerUserID: uuid.New()}
	ctx := context.Background()

	added, err := service.AddShoppingItem(ctx, domain.AddShoppingItemRequest{Name: "味噌", Quantity: 1}, scope)
	if err != nil {
		t.Fatalf("AddShoppingItem failed: %v", err)
	}

	shoppingRepo.deleteErr = errors.New("connection reset")

	req := domain.PromoteToStockRequest{
		ShoppingItemID: added.ID,
		StorageType:    entities.StorageAmbient,
		ExpiryDate:     "2025-12-01",
	}
	err = service.PromoteToStock(ctx, req, scope)
	if !errors.Is(err, domain.ErrPromotionCleanupFailed) {
		t.Fatalf("err = %v, want ErrPromotionCleanupFailed", err)
	}

	// The merge itself committed; only the source entry is left behind.
	if len(stockRepo.items) != 1 {
		t.Errorf("stock merge should have committed before cleanup failed")
	}
	if len(shoppingRepo.items) != 1 {
		t.Errorf("shopping entry should survive the failed deletion")
	}
}

func TestPromoteToStockRejectsForeignScope(t *testing.T) {
	_, _, service := newTestService()
	owner := domain.Scope{OwnerUserID: uuid.New()}
	stranger := domain.Scope{OwnerUserID: uuid.New()}
	ctx := context.Background()

	added, err := service.AddShoppingItem(ctx, domain.AddShoppingItemRequest{Name: "米", Quantity: 5, Unit: "kg"}, owner)
	if err != nil {
		t.Fatalf("AddShoppingItem failed: %v", err)
	}

	req := domain.PromoteToStockRequest{
		ShoppingItemID: added.ID,
		StorageType:    entities.StorageAmbient,
		ExpiryDate:     "2026-01-01",
	}
	if err := service.PromoteToStock(ctx, req, stranger); err != domain.ErrUnauthorizedAccess {
		t.Errorf("err = %v, want ErrUnauthorizedAccess", err)
	}
}

func TestPromoteToStockUnknownItem(t *testing.T) {
	_, _, service := newTestService()
	scope := domain.Scope{OwnerUserID: uuid.New()}

	req := domain.PromoteToStockRequest{
		ShoppingItemID: uuid.New().String(),
		StorageType:    entities.StorageAmbient,
		ExpiryDate:     "2026-01-01",
	}
	if err := service.PromoteToStock(context.Background(), req, scope); err != domain.ErrShoppingItemNotFound {
		t.Errorf("err = %v, want ErrShoppingItemNotFound", err)
	}
}

func TestDeleteShoppingItemChecksScope(t *testing.T) {
	shoppingRepo, _, service := newTestService()
	owner := domain.Scope{OwnerUserID: uuid.New()}
	stranger := domain.Scope{OwnerUserID: uuid.New()}
	ctx := context.Background()

	added, err := service.AddShoppingItem(ctx, domain.AddShoppingItemRequest{Name: "醤油"}, owner)
	if err != nil {
		t.Fatalf("AddShoppingItem failed: %v", err)
	}

	if err := service.DeleteShoppingItem(ctx, added.ID, stranger); err != domain.ErrUnauthorizedAccess {
		t.Errorf("err = %v, want ErrUnauthorizedAccess", err)
	}
	if err := service.DeleteShoppingItem(ctx, added.ID, owner); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if len(shoppingRepo.items) != 0 {
		t.Errorf("entry should be deleted")
	}
}
