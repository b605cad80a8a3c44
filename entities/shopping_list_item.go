package entities

import (
	"github.com/google/uuid"
)

type ShoppingListItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerUserID uuid.UUID  `json:"owner_user_id"`
	GroupID     *uuid.UUID `gorm:"index" json:"group_id,omitempty"`
	Name        string     `json:"name"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`

	Owner *User  `gorm:"foreignKey:OwnerUserID"`
	Group *Group `gorm:"foreignKey:GroupID"`
	Timestamp
}
