package inventory

import (
	"context"
	"time"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"

	"gorm.io/gorm"
)

type (
	StockRepository interface {
		CreateStockItem(ctx context.Context, item *entities.StockItem) error
		GetStockItemByID(ctx context.Context, id string) (*entities.StockItem, error)
		UpdateStockItem(ctx context.Context, item *entities.StockItem) error
		DeleteStockItem(ctx context.Context, id string) error
		GetStockItems(ctx context.Context, scope domain.Scope, storageType string) ([]*entities.StockItem, error)
		FindMatch(ctx context.Context, scope domain.Scope, name, storageType string, expiryDate time.Time) (*entities.StockItem, error)

		// WithMergeLock serializes the find-then-write sequence of a merge.
		// Two concurrent merges of the same (scope, name, storageType,
		// expiryDate) key would otherwise both observe "no match" and both
		// insert. fn receives a repository bound to the lock's transaction.
		WithMergeLock(ctx context.Context, key string, fn func(StockRepository) error) error
	}

	stockRepository struct {
		db *gorm.DB
	}
)

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func scopeQuery(db *gorm.DB, scope domain.Scope) *gorm.DB {
	if scope.Shared() {
		return db.Where("group_id = ?", scope.GroupID)
	}
	return db.Where("owner_user_id = ? AND group_id IS NULL", scope.OwnerUserID)
}

func (r *stockRepository) CreateStockItem(ctx context.Context, item *entities.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockRepository) GetStockItemByID(ctx context.Context, id string) (*entities.StockItem, error) {
	var item entities.StockItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) UpdateStockItem(ctx context.Context, item *entities.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *stockRepository) DeleteStockItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.StockItem{}).Error
}

func (r *stockRepository) GetStockItems(ctx context.Context, scope domain.Scope, storageType string) ([]*entities.StockItem, error) {
	var items []*entities.StockItem

	query := scopeQuery(r.db.WithContext(ctx), scope)
	if storageType != "" && storageType != "all" {
		query = query.Where("storage_type = ?", storageType)
	}

	if err := query.Order("expiry_date asc").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *stockRepository) FindMatch(ctx context.Context, scope domain.Scope, name, storageType string, expiryDate time.Time) (*entities.StockItem, error) {
	var item entities.StockItem

	query := scopeQuery(r.db.WithContext(ctx), scope).
		Where("name = ? AND storage_type = ? AND expiry_date = ?", name, storageType, expiryDate)

	if err := query.First(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *stockRepository) WithMergeLock(ctx context.Context, key string, fn func(StockRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}
		return fn(&stockRepository{db: tx})
	})
}
