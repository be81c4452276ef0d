package domain

import (
	"context"

	"github.com/google/uuid"
)

// =============================================================================
// VARIATION DOMAIN TYPES
// =============================================================================

// GroupSource records where a variation group attached to a product came
// from. Carried for traceability only: groups are normalized into one list
// before they reach the selection engine, which never branches on source.
type GroupSource string

const (
	GroupSourcePrivate  GroupSource = "private"  // owned by the product
	GroupSourceTemplate GroupSource = "template" // restaurant-level template assignment
)

// VariationGroup is one axis of customization on a product, e.g. "Tamanho"
// or "Sabores".
//
// When AllowMultiple is false the group has radio semantics: exactly one
// option may be selected and MaxSelections is ignored. When AllowMultiple is
// true, MaxSelections is the exact number of selections a required group
// must reach, not an upper bound on an otherwise free choice.
type VariationGroup struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	Name          string
	IsRequired    bool
	AllowMultiple bool
	MaxSelections int32 // meaningful only when AllowMultiple; min 1
	SortOrder     int32
	Source        GroupSource
}

// VariationOption is one selectable value within a group. PriceAdjustment is
// signed and added to the product base price when selected. At most one
// option per group carries IsDefault.
type VariationOption struct {
	ID              uuid.UUID
	GroupID         uuid.UUID
	Name            string
	PriceAdjustment int64 // centavos, signed
	IsDefault       bool
	IsAvailable     bool
	SortOrder       int32
}

// SelectedVariation captures one chosen option for one group at
// add-to-cart time. Groups that allow multiple selections produce one record
// per chosen option; selection is set-like per group, so the same option id
// never appears twice.
type SelectedVariation struct {
	GroupID         uuid.UUID
	GroupName       string
	OptionID        uuid.UUID
	OptionName      string
	PriceAdjustment int64
}

// =============================================================================
// TEMPLATE TYPES (restaurant-level reusable groups)
// =============================================================================

// GroupTemplate is a reusable variation group defined once per restaurant
// and assigned to any number of products.
type GroupTemplate struct {
	ID            uuid.UUID
	RestaurantID  uuid.UUID
	Name          string
	IsRequired    bool
	AllowMultiple bool
	MaxSelections int32
	SortOrder     int32
}

// OptionTemplate is one option of a group template.
type OptionTemplate struct {
	ID              uuid.UUID
	TemplateID      uuid.UUID
	Name            string
	PriceAdjustment int64
	IsDefault       bool
	SortOrder       int32
}

// TemplateAssignment links a group template to a product.
type TemplateAssignment struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	TemplateID uuid.UUID
	SortOrder  int32
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// VariationService manages product-private variation groups, restaurant
// templates, and template assignments. Every mutation that changes a
// product's effective variation set triggers a price-range recompute on
// that product.
type VariationService interface {
	// Private groups.
	ListGroups(ctx context.Context, productID uuid.UUID) ([]VariationGroup, error)
	CreateGroup(ctx context.Context, params CreateGroupParams) (*VariationGroup, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, params UpdateGroupParams) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	// Options of private groups.
	ListOptions(ctx context.Context, groupID uuid.UUID) ([]VariationOption, error)
	CreateOption(ctx context.Context, params CreateOptionParams) (*VariationOption, error)
	UpdateOption(ctx context.Context, id uuid.UUID, params UpdateOptionParams) error
	DeleteOption(ctx context.Context, id uuid.UUID) error

	// Restaurant-level templates.
	ListTemplates(ctx context.Context, restaurantID uuid.UUID) ([]GroupTemplate, error)
	CreateTemplate(ctx context.Context, params CreateTemplateParams) (*GroupTemplate, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, params UpdateTemplateParams) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	ListTemplateOptions(ctx context.Context, templateID uuid.UUID) ([]OptionTemplate, error)
	CreateTemplateOption(ctx context.Context, params CreateTemplateOptionParams) (*OptionTemplate, error)
	DeleteTemplateOption(ctx context.Context, id uuid.UUID) error

	// Assignments.
	ListAssignments(ctx context.Context, productID uuid.UUID) ([]TemplateAssignment, error)
	AssignTemplate(ctx context.Context, productID, templateID uuid.UUID, sortOrder int32) (*TemplateAssignment, error)
	UnassignTemplate(ctx context.Context, assignmentID uuid.UUID) error
}

// =============================================================================
// PARAMETER TYPES
// =============================================================================

// CreateGroupParams contains parameters for creating a private variation group.
type CreateGroupParams struct {
	ProductID     uuid.UUID
	Name          string
	IsRequired    bool
	AllowMultiple bool
	MaxSelections int32
	SortOrder     int32
}

// UpdateGroupParams contains optional group updates (nil = no change).
type UpdateGroupParams struct {
	Name          *string
	IsRequired    *bool
	AllowMultiple *bool
	MaxSelections *int32
	SortOrder     *int32
}

// CreateOptionParams contains parameters for creating a variation option.
type CreateOptionParams struct {
	GroupID         uuid.UUID
	Name            string
	PriceAdjustment int64
	IsDefault       bool
	IsAvailable     bool
	SortOrder       int32
}

// UpdateOptionParams contains optional option updates (nil = no change).
type UpdateOptionParams struct {
	Name            *string
	PriceAdjustment *int64
	IsDefault       *bool
	IsAvailable     *bool
	SortOrder       *int32
}

// CreateTemplateParams contains parameters for creating a group template.
type CreateTemplateParams struct {
	RestaurantID  uuid.UUID
	Name          string
	IsRequired    bool
	AllowMultiple bool
	MaxSelections int32
	SortOrder     int32
}

// UpdateTemplateParams contains optional template updates (nil = no change).
type UpdateTemplateParams struct {
	Name          *string
	IsRequired    *bool
	AllowMultiple *bool
	MaxSelections *int32
	SortOrder     *int32
}

// CreateTemplateOptionParams contains parameters for creating a template option.
type CreateTemplateOptionParams struct {
	TemplateID      uuid.UUID
	Name            string
	PriceAdjustment int64
	IsDefault       bool
	SortOrder       int32
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrGroupNotFound    = &Error{Code: ENOTFOUND, Message: "Variation group not found"}
	ErrOptionNotFound   = &Error{Code: ENOTFOUND, Message: "Variation option not found"}
	ErrTemplateNotFound = &Error{Code: ENOTFOUND, Message: "Variation template not found"}

	ErrInvalidMaxSelections = &Error{Code: EINVALID, Message: "Max selections must be at least 1"}
	ErrTemplateAssigned     = &Error{Code: ECONFLICT, Message: "Template is assigned to this product already"}
)
