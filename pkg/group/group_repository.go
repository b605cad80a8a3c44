package group

import (
	"context"

	"pashameshi-backend/entities"

	"gorm.io/gorm"
)

type (
	GroupRepository interface {
		CreateGroup(ctx context.Context, group *entities.Group) error
		GetGroupByID(ctx context.Context, id string) (*entities.Group, error)
	}

	groupRepository struct {
		db *gorm.DB
	}
)

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CreateGroup(ctx context.Context, group *entities.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) GetGroupByID(ctx context.Context, id string) (*entities.Group, error) {
	var group entities.Group
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
