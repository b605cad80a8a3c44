package domain

import (
	"errors"
	"os"

	"github.com/google/uuid"
)

const (
	RoleUser = "user"
)

var (
	MessageFailedBodyRequest    = "failed to process body request"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID        = errors.New("failed to parse UUID")
	ErrNotAuthenticated = errors.New("no authenticated user session")
	ErrTokenNotFound    = errors.New("failed to token not found")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("token invalid")
)

// Scope is the (ownerUserID, groupID) partition every stock and shopping-list
// operation writes into. It is resolved from the user's profile immediately
// before each operation and passed explicitly; it must never be cached across
// operations because group membership can change from another device.
type Scope struct {
	OwnerUserID uuid.UUID  `json:"owner_user_id"`
	GroupID     *uuid.UUID `json:"group_id,omitempty"`
}

func (s Scope) Shared() bool {
	return s.GroupID != nil
}
