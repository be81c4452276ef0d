package storefront

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/handler"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/google/uuid"
)

// MenuHandler serves the public menu of a restaurant.
type MenuHandler struct {
	restaurants domain.RestaurantService
	catalog     domain.CatalogService
	logger      *slog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(restaurants domain.RestaurantService, catalog domain.CatalogService, logger *slog.Logger) *MenuHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MenuHandler{
		restaurants: restaurants,
		catalog:     catalog,
		logger:      logger,
	}
}

type restaurantView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	Address        string    `json:"address,omitempty"`
	IsOpen         bool      `json:"is_open"`
	MinOrderValue  int64     `json:"min_order_value"`
	AllowsDelivery bool      `json:"allows_delivery"`
}

type productView struct {
	ID                 uuid.UUID `json:"id"`
	CategoryID         uuid.UUID `json:"category_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	BasePrice          int64     `json:"base_price"`
	PriceDisplay       string    `json:"price_display"`
	ImageURL           string    `json:"image_url,omitempty"`
	IsPromotion        bool      `json:"is_promotion"`
	AllowsObservations bool      `json:"allows_observations"`
	HasVariations      bool      `json:"has_variations"`
}

type categoryView struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Products []productView `json:"products"`
}

type menuResponse struct {
	Restaurant restaurantView `json:"restaurant"`
	Categories []categoryView `json:"categories"`
}

// View handles GET /api/menu/{slug}
func (h *MenuHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	restaurant, err := h.restaurants.GetBySlug(ctx, slug)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	categories, err := h.catalog.ListCategories(ctx, restaurant.ID)
	if err != nil {
		h.logger.Error("failed to list categories", "slug", slug, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	products, err := h.catalog.ListProducts(ctx, restaurant.ID)
	if err != nil {
		h.logger.Error("failed to list products", "slug", slug, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	byCategory := make(map[uuid.UUID][]productView)
	for _, p := range products {
		if !p.IsAvailable {
			continue
		}
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], productView{
			ID:                 p.ID,
			CategoryID:         p.CategoryID,
			Name:               p.Name,
			Description:        p.Description,
			BasePrice:          p.BasePrice,
			PriceDisplay:       menu.FormatProductPrice(p),
			ImageURL:           p.ImageURL,
			IsPromotion:        p.IsPromotion,
			AllowsObservations: p.AllowsObservations,
			HasVariations:      p.HasVariations,
		})
	}

	resp := menuResponse{
		Restaurant: restaurantView{
			ID:             restaurant.ID,
			Name:           restaurant.Name,
			Slug:           restaurant.Slug,
			Description:    restaurant.Description,
			Address:        restaurant.Address,
			IsOpen:         restaurant.IsOpen,
			MinOrderValue:  restaurant.MinOrderValue,
			AllowsDelivery: restaurant.AllowsDelivery,
		},
	}
	for _, c := range categories {
		views := byCategory[c.ID]
		if len(views) == 0 {
			continue
		}
		resp.Categories = append(resp.Categories, categoryView{
			ID:       c.ID,
			Name:     c.Name,
			Products: views,
		})
	}

	handler.RespondJSON(w, http.StatusOK, resp)
}

type groupView struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	IsRequired    bool         `json:"is_required"`
	AllowMultiple bool         `json:"allow_multiple"`
	MaxSelections int32        `json:"max_selections"`
	Options       []optionView `json:"options"`
}

type optionView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PriceAdjustment int64     `json:"price_adjustment"`
	IsDefault       bool      `json:"is_default"`
}

type extraView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"price"`
}

type productConfigResponse struct {
	Product productView `json:"product"`
	Groups  []groupView `json:"groups"`
	Extras  []extraView `json:"extras"`
}

// ProductConfiguration handles GET /api/menu/{slug}/products/{id}
func (h *MenuHandler) ProductConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	restaurant, err := h.restaurants.GetBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid product id")
		return
	}

	cfg, err := h.catalog.GetProductConfiguration(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			handler.ErrorResponse(w, r, err)
			return
		}
		h.logger.Error("failed to load product configuration", "product_id", productID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	if cfg.Product.RestaurantID != restaurant.ID || !cfg.Product.IsAvailable {
		handler.ErrorResponse(w, r, domain.ErrProductNotFound)
		return
	}

	resp := productConfigResponse{
		Product: productView{
			ID:                 cfg.Product.ID,
			CategoryID:         cfg.Product.CategoryID,
			Name:               cfg.Product.Name,
			Description:        cfg.Product.Description,
			BasePrice:          cfg.Product.BasePrice,
			PriceDisplay:       menu.FormatProductPrice(cfg.Product),
			ImageURL:           cfg.Product.ImageURL,
			IsPromotion:        cfg.Product.IsPromotion,
			AllowsObservations: cfg.Product.AllowsObservations,
			HasVariations:      cfg.Product.HasVariations,
		},
	}

	for _, g := range cfg.Groups {
		gv := groupView{
			ID:            g.ID,
			Name:          g.Name,
			IsRequired:    g.IsRequired,
			AllowMultiple: g.AllowMultiple,
			MaxSelections: g.MaxSelections,
		}
		for _, o := range cfg.Options[g.ID] {
			gv.Options = append(gv.Options, optionView{
				ID:              o.ID,
				Name:            o.Name,
				PriceAdjustment: o.PriceAdjustment,
				IsDefault:       o.IsDefault,
			})
		}
		resp.Groups = append(resp.Groups, gv)
	}

	for _, e := range cfg.Extras {
		resp.Extras = append(resp.Extras, extraView{ID: e.ID, Name: e.Name, Price: e.Price})
	}

	handler.RespondJSON(w, http.StatusOK, resp)
}
