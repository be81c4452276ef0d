package admin

import (
	"encoding/json"
	"net/http"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/handler"
	"github.com/google/uuid"
)

// CategoryHandler manages menu categories.
type CategoryHandler struct {
	catalog domain.CatalogService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(catalog domain.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List handles GET /api/admin/restaurants/{id}/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	categories, err := h.catalog.ListCategories(r.Context(), restaurantID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, categories)
}

type categoryRequest struct {
	Name      string `json:"name"`
	SortOrder int32  `json:"sort_order"`
}

// Create handles POST /api/admin/restaurants/{id}/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}
	if req.Name == "" {
		handler.BadRequestResponse(w, r, "name is required")
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), domain.CreateCategoryParams{
		RestaurantID: restaurantID,
		Name:         req.Name,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, category)
}

// Update handles PUT /api/admin/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid category id")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}
	if req.Name == "" {
		handler.BadRequestResponse(w, r, "name is required")
		return
	}

	if err := h.catalog.UpdateCategory(r.Context(), id, req.Name, req.SortOrder); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid category id")
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
