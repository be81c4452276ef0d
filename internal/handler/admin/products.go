package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/handler"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/google/uuid"
)

// ProductHandler manages products and their extras. Prices cross the API
// as decimal strings ("24.90") and are stored as centavos.
type ProductHandler struct {
	catalog domain.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog domain.CatalogService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{catalog: catalog, logger: logger}
}

// List handles GET /api/admin/restaurants/{id}/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), restaurantID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, products)
}

type createProductRequest struct {
	CategoryID         uuid.UUID `json:"category_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	BasePrice          string    `json:"base_price"`
	ImageURL           string    `json:"image_url"`
	IsAvailable        bool      `json:"is_available"`
	IsPromotion        bool      `json:"is_promotion"`
	AllowsObservations bool      `json:"allows_observations"`
}

// Create handles POST /api/admin/restaurants/{id}/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}
	if req.Name == "" {
		handler.BadRequestResponse(w, r, "name is required")
		return
	}

	basePrice, err := menu.ParsePrice(req.BasePrice)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), domain.CreateProductParams{
		RestaurantID:       restaurantID,
		CategoryID:         req.CategoryID,
		Name:               req.Name,
		Description:        req.Description,
		BasePrice:          basePrice,
		ImageURL:           req.ImageURL,
		IsAvailable:        req.IsAvailable,
		IsPromotion:        req.IsPromotion,
		AllowsObservations: req.AllowsObservations,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	handler.RespondJSON(w, http.StatusCreated, product)
}

type updateProductRequest struct {
	CategoryID         *uuid.UUID `json:"category_id"`
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	BasePrice          *string    `json:"base_price"`
	ImageURL           *string    `json:"image_url"`
	IsAvailable        *bool      `json:"is_available"`
	IsPromotion        *bool      `json:"is_promotion"`
	AllowsObservations *bool      `json:"allows_observations"`
}

// Update handles PATCH /api/admin/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	params := domain.UpdateProductParams{
		CategoryID:         req.CategoryID,
		Name:               req.Name,
		Description:        req.Description,
		ImageURL:           req.ImageURL,
		IsAvailable:        req.IsAvailable,
		IsPromotion:        req.IsPromotion,
		AllowsObservations: req.AllowsObservations,
	}

	if req.BasePrice != nil {
		cents, err := menu.ParsePrice(*req.BasePrice)
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
		params.BasePrice = &cents
	}

	if err := h.catalog.UpdateProduct(r.Context(), id, params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListExtras handles GET /api/admin/products/{id}/extras
func (h *ProductHandler) ListExtras(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	extras, err := h.catalog.ListExtras(r.Context(), productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, extras)
}

type createExtraRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	IsAvailable bool   `json:"is_available"`
}

// CreateExtra handles POST /api/admin/products/{id}/extras
func (h *ProductHandler) CreateExtra(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	var req createExtraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}
	if req.Name == "" {
		handler.BadRequestResponse(w, r, "name is required")
		return
	}

	price, err := menu.ParsePrice(req.Price)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	extra, err := h.catalog.CreateExtra(r.Context(), domain.CreateExtraParams{
		ProductID:   productID,
		Name:        req.Name,
		Price:       price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, extra)
}

type updateExtraRequest struct {
	Name        *string `json:"name"`
	Price       *string `json:"price"`
	IsAvailable *bool   `json:"is_available"`
}

// UpdateExtra handles PATCH /api/admin/extras/{id}
func (h *ProductHandler) UpdateExtra(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid extra id")
		return
	}

	var req updateExtraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	params := domain.UpdateExtraParams{
		Name:        req.Name,
		IsAvailable: req.IsAvailable,
	}

	if req.Price != nil {
		cents, err := menu.ParsePrice(*req.Price)
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
		params.Price = &cents
	}

	if err := h.catalog.UpdateExtra(r.Context(), id, params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteExtra handles DELETE /api/admin/extras/{id}
func (h *ProductHandler) DeleteExtra(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid extra id")
		return
	}

	if err := h.catalog.DeleteExtra(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
