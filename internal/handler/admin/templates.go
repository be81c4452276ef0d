package admin

import (
	"encoding/json"
	"net/http"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/handler"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/google/uuid"
)

// TemplateHandler manages restaurant-level variation group templates and
// their assignments to products.
type TemplateHandler struct {
	variations domain.VariationService
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(variations domain.VariationService) *TemplateHandler {
	return &TemplateHandler{variations: variations}
}

// List handles GET /api/admin/restaurants/{id}/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	templates, err := h.variations.ListTemplates(r.Context(), restaurantID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, templates)
}

type templateRequest struct {
	Name          string `json:"name"`
	IsRequired    bool   `json:"is_required"`
	AllowMultiple bool   `json:"allow_multiple"`
	MaxSelections int32  `json:"max_selections"`
	SortOrder     int32  `json:"sort_order"`
}

// Create handles POST /api/admin/restaurants/{id}/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}
	if req.Name == "" {
		handler.BadRequestResponse(w, r, "name is required")
		return
	}

	template, err := h.variations.CreateTemplate(r.Context(), domain.CreateTemplateParams{
		RestaurantID:  restaurantID,
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

	handler.RespondJSON(w, http.StatusCreated, template)
}

type updateTemplateRequest struct {
	Name          *string `json:"name"`
	IsRequired    *bool   `json:"is_required"`
	AllowMultiple *bool   `json:"allow_multiple"`
	MaxSelections *int32  `json:"max_selections"`
	SortOrder     *int32  `json:"sort_order"`
}

// Update handles PATCH /api/admin/templates/{id}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid template id")
		return
	}

	var req updateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	if err := h.variations.UpdateTemplate(r.Context(), id, domain.UpdateTemplateParams{
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

// Delete handles DELETE /api/admin/templates/{id}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid template id")
		return
	}

	if err := h.variations.DeleteTemplate(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOptions handles GET /api/admin/templates/{id}/options
func (h *TemplateHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	templateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid template id")
		return
	}

	options, err := h.variations.ListTemplateOptions(r.Context(), templateID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, options)
}

type templateOptionRequest struct {
	Name            string `json:"name"`
	PriceAdjustment string `json:"price_adjustment"`
	IsDefault       bool   `json:"is_default"`
	SortOrder       int32  `json:"sort_order"`
}

// CreateOption handles POST /api/admin/templates/{id}/options
func (h *TemplateHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	templateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid template id")
		return
	}

	var req templateOptionRequest
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

	option, err := h.variations.CreateTemplateOption(r.Context(), domain.CreateTemplateOptionParams{
		TemplateID:      templateID,
		Name:            req.Name,
		PriceAdjustment: adjustment,
		IsDefault:       req.IsDefault,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, option)
}

// DeleteOption handles DELETE /api/admin/template-options/{id}
func (h *TemplateHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid option id")
		return
	}

	if err := h.variations.DeleteTemplateOption(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAssignments handles GET /api/admin/products/{id}/templates
func (h *TemplateHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	assignments, err := h.variations.ListAssignments(r.Context(), productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, assignments)
}

type assignTemplateRequest struct {
	TemplateID uuid.UUID `json:"template_id"`
	SortOrder  int32     `json:"sort_order"`
}

// Assign handles POST /api/admin/products/{id}/templates
func (h *TemplateHandler) Assign(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	var req assignTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	assignment, err := h.variations.AssignTemplate(r.Context(), productID, req.TemplateID, req.SortOrder)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, assignment)
}

// Unassign handles DELETE /api/admin/assignments/{id}
func (h *TemplateHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid assignment id")
		return
	}

	if err := h.variations.UnassignTemplate(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
