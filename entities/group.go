package entities

import (
	"github.com/google/uuid"
)

// Group is a shared household partition. The group ID doubles as the invite
// code members exchange to join it.
type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`

	Timestamp
}
