package admin

import (
	"encoding/json"
	"net/http"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/handler"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/google/uuid"
)

// VariationHandler manages a product's private variation groups and their
// options. Every mutation routed here re-derives the owning product's
// price-range display fields.
type VariationHandler struct {
	variations domain.VariationService
}

// NewVariationHandler creates a new variation handler.
func NewVariationHandler(variations domain.VariationService) *VariationHandler {
	return &VariationHandler{variations: variations}
}

// ListGroups handles GET /api/admin/products/{id}/groups
func (h *VariationHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	groups, err := h.variations.ListGroups(r.Context(), productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, groups)
}

type createGroupRequest struct {
	Name          string `json:"name"`
	IsRequired    bool   `json:"is_required"`
	AllowMultiple bool   `json:"allow_multiple"`
	MaxSelections int32  `json:"max_selections"`
	SortOrder     int32  `json:"sort_order"`
}

// CreateGroup handles POST /api/admin/products/{id}/groups
func (h *VariationHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}
	if req.Name == "" {
		handler.BadRequestResponse(w, r, "name is required")
		return
	}

	group, err := h.variations.CreateGroup(r.Context(), domain.CreateGroupParams{
		ProductID:     productID,
		Name:          req.Name,
		IsRequired:    req.IsRequired,
		AllowMultiple: req.AllowMultiple,
		MaxSelections: req.MaxSelections,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, group)
}

type updateGroupRequest struct {
	Name          *string `json:"name"`
	IsRequired    *bool   `json:"is_required"`
	AllowMultiple *bool   `json:"allow_multiple"`
	MaxSelections *int32  `json:"max_selections"`
	SortOrder     *int32  `json:"sort_order"`
}

// UpdateGroup handles PATCH /api/admin/groups/{id}
func (h *VariationHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid group id")
		return
	}

	var req updateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	if err := h.variations.UpdateGroup(r.Context(), id, domain.UpdateGroupParams{
		Name:          req.Name,
		IsRequired:    req.IsRequired,
		AllowMultiple: req.AllowMultiple,
		MaxSelections: req.MaxSelections,
		SortOrder:     req.SortOrder,
	}); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteGroup handles DELETE /api/admin/groups/{id}
func (h *VariationHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid group id")
		return
	}

	if err := h.variations.DeleteGroup(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOptions handles GET /api/admin/groups/{id}/options
func (h *VariationHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid group id")
		return
	}

	options, err := h.variations.ListOptions(r.Context(), groupID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, options)
}

type createOptionRequest struct {
	Name            string `json:"name"`
	PriceAdjustment string `json:"price_adjustment"` // decimal, may be negative
	IsDefault       bool   `json:"is_default"`
	IsAvailable     bool   `json:"is_available"`
	SortOrder       int32  `json:"sort_order"`
}

// CreateOption handles POST /api/admin/groups/{id}/options
func (h *VariationHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid group id")
		return
	}

	var req createOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}
	if req.Name == "" {
		handler.BadRequestResponse(w, r, "name is required")
		return
	}

	adjustment := int64(0)
	if req.PriceAdjustment != "" {
		adjustment, err = menu.ParsePrice(req.PriceAdjustment)
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	option, err := h.variations.CreateOption(r.Context(), domain.CreateOptionParams{
		GroupID:         groupID,
		Name:            req.Name,
		PriceAdjustment: adjustment,
		IsDefault:       req.IsDefault,
		IsAvailable:     req.IsAvailable,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, option)
}

type updateOptionRequest struct {
	Name            *string `json:"name"`
	PriceAdjustment *string `json:"price_adjustment"`
	IsDefault       *bool   `json:"is_default"`
	IsAvailable     *bool   `json:"is_available"`
	SortOrder       *int32  `json:"sort_order"`
}

// UpdateOption handles PATCH /api/admin/options/{id}
func (h *VariationHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid option id")
		return
	}

	var req updateOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	params := domain.UpdateOptionParams{
		Name:        req.Name,
		IsDefault:   req.IsDefault,
		IsAvailable: req.IsAvailable,
		SortOrder:   req.SortOrder,
	}

	if req.PriceAdjustment != nil {
		cents, err := menu.ParsePrice(*req.PriceAdjustment)
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
		params.PriceAdjustment = &cents
	}

	if err := h.variations.UpdateOption(r.Context(), id, params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOption handles DELETE /api/admin/options/{id}
func (h *VariationHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid option id")
		return
	}

	if err := h.variations.DeleteOption(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
