package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	StorageRefrigerated = "refrigerated"
	StorageFrozen       = "frozen"
	StorageAmbient      = "ambient"
)

// StockItem is one inventory row. Visibility follows the scope key
// (owner_user_id, group_id): a non-nil group id makes the row shared with
// every current group member, a nil group id keeps it personal.
type StockItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerUserID uuid.UUID  `json:"owner_user_id"`
	GroupID     *uuid.UUID `gorm:"index" json:"group_id,omitempty"`
	Name        string     `json:"name"`
	Genre       string     `json:"genre"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	ExpiryDate  time.Time  `gorm:"type:date" json:"expiry_date"`
	StorageType string     `json:"storage_type"` // "refrigerated", "frozen", "ambient"
	ImageURL    string     `json:"image_url,omitempty"`

	Owner *User  `gorm:"foreignKey:OwnerUserID"`
	Group *Group `gorm:"foreignKey:GroupID"`
	Timestamp
}
