package domain

import (
	"context"

	"github.com/google/uuid"
)

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// Category groups products on the public menu.
type Category struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	SortOrder    int32
}

// Product is one menu item. Prices are stored in centavos.
type Product struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Description  string
	BasePrice    int64
	ImageURL     string
	IsAvailable  bool
	IsPromotion  bool

	// AllowsObservations controls whether the storefront offers a free-text
	// note field for this product.
	AllowsObservations bool

	// Precomputed price-range display fields. Maintained by the catalog
	// service whenever variation groups or options attached to this product
	// change. Nil when HasVariations is false.
	PriceDisplayMin *int64
	PriceDisplayMax *int64
	HasVariations   bool
}

// Extra is an independent, always-optional add-on for one product.
// Any subset may be selected; each selected extra contributes its price once
// per unit quantity.
type Extra struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	Name        string
	Price       int64 // centavos, non-negative
	IsAvailable bool
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// CatalogService provides catalog operations for one restaurant's menu.
// Storefront reads are scoped to available items; admin operations see
// everything.
type CatalogService interface {
	// ListCategories returns the restaurant's categories in display order.
	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]Category, error)

	// ListProducts returns all products of the restaurant in category order.
	ListProducts(ctx context.Context, restaurantID uuid.UUID) ([]Product, error)

	// GetProduct retrieves a single product.
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)

	// GetProductConfiguration loads everything the storefront needs to open
	// a product's configuration view: the product, its merged variation
	// groups (private groups plus assigned templates, normalized into one
	// ordered list), the available options per group, and available extras.
	GetProductConfiguration(ctx context.Context, productID uuid.UUID) (*ProductConfiguration, error)

	// Admin CRUD.
	CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string, sortOrder int32) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateExtra(ctx context.Context, params CreateExtraParams) (*Extra, error)
	UpdateExtra(ctx context.Context, id uuid.UUID, params UpdateExtraParams) error
	DeleteExtra(ctx context.Context, id uuid.UUID) error
	ListExtras(ctx context.Context, productID uuid.UUID) ([]Extra, error)
}

// ProductConfiguration aggregates the data handed to the selection engine
// when a product detail view opens. Groups are already merged and ordered;
// the engine never sees where a group came from.
type ProductConfiguration struct {
	Product Product
	Groups  []VariationGroup
	Options map[uuid.UUID][]VariationOption // keyed by group ID, available only
	Extras  []Extra
}

// =============================================================================
// PARAMETER TYPES
// =============================================================================

// CreateCategoryParams contains parameters for creating a category.
type CreateCategoryParams struct {
	RestaurantID uuid.UUID
	Name         string
	SortOrder    int32
}

// CreateProductParams contains parameters for creating a product.
type CreateProductParams struct {
	RestaurantID       uuid.UUID
	CategoryID         uuid.UUID
	Name               string
	Description        string
	BasePrice          int64
	ImageURL           string
	IsAvailable        bool
	IsPromotion        bool
	AllowsObservations bool
}

// UpdateProductParams contains parameters for updating a product.
// Pointer fields indicate optional updates (nil = no change).
type UpdateProductParams struct {
	CategoryID         *uuid.UUID
	Name               *string
	Description        *string
	BasePrice          *int64
	ImageURL           *string
	IsAvailable        *bool
	IsPromotion        *bool
	AllowsObservations *bool
}

// CreateExtraParams contains parameters for creating a product extra.
type CreateExtraParams struct {
	ProductID   uuid.UUID
	Name        string
	Price       int64
	IsAvailable bool
}

// UpdateExtraParams contains parameters for updating a product extra.
type UpdateExtraParams struct {
	Name        *string
	Price       *int64
	IsAvailable *bool
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrExtraNotFound    = &Error{Code: ENOTFOUND, Message: "Extra not found"}

	ErrNegativePrice = &Error{Code: EINVALID, Message: "Price must not be negative"}
)
