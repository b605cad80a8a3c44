package shopping

import (
	"context"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"

	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		CreateShoppingItem(ctx context.Context, item *entities.ShoppingListItem) error
		GetShoppingItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error)
		GetShoppingItems(ctx context.Context, scope domain.Scope) ([]*entities.ShoppingListItem, error)
		DeleteShoppingItem(ctx context.Context, id string) error
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) CreateShoppingItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingRepository) GetShoppingItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) GetShoppingItems(ctx context.Context, scope domain.Scope) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem

	query := r.db.WithContext(ctx)
	if scope.Shared() {
		query = query.Where("group_id = ?", scope.GroupID)
	} else {
		query = query.Where("owner_user_id = ? AND group_id IS NULL", scope.OwnerUserID)
	}

	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *shoppingRepository) DeleteShoppingItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingListItem{}).Error
}
