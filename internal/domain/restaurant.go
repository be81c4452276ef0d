package domain

import (
	"context"

	"github.com/google/uuid"
)

// Restaurant is one tenant of the platform. Each restaurant owns its own
// catalog and receives orders on its own WhatsApp number.
type Restaurant struct {
	ID            uuid.UUID
	Name          string
	Slug          string
	Description   string
	ContactEmail  string
	ContactPhone  string
	WhatsApp      string // digits only, country code included (e.g. "5511999999999")
	Address       string
	IsOpen        bool
	MinOrderValue int64 // centavos; 0 means no minimum
	AllowsDelivery bool
}

// RestaurantService provides read access to restaurant settings.
type RestaurantService interface {
	// GetBySlug retrieves a restaurant by its public storefront slug.
	GetBySlug(ctx context.Context, slug string) (*Restaurant, error)

	// GetByID retrieves a restaurant by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)

	// UpdateSettings updates ordering-related settings (open flag, minimum
	// order value, delivery flag, WhatsApp number, address).
	UpdateSettings(ctx context.Context, id uuid.UUID, params UpdateRestaurantParams) error
}

// UpdateRestaurantParams contains optional settings updates (nil = no change).
type UpdateRestaurantParams struct {
	Name           *string
	Description    *string
	WhatsApp       *string
	Address        *string
	IsOpen         *bool
	MinOrderValue  *int64
	AllowsDelivery *bool
}

var ErrRestaurantNotFound = &Error{Code: ENOTFOUND, Message: "Restaurant not found"}
