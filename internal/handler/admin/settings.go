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

// SettingsHandler manages restaurant ordering settings.
type SettingsHandler struct {
	restaurants domain.RestaurantService
	logger      *slog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(restaurants domain.RestaurantService, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{restaurants: restaurants, logger: logger}
}

type settingsResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	WhatsApp       string    `json:"whatsapp"`
	Address        string    `json:"address"`
	IsOpen         bool      `json:"is_open"`
	MinOrderValue  string    `json:"min_order_value"`
	AllowsDelivery bool      `json:"allows_delivery"`
}

// Get handles GET /api/admin/restaurants/{id}
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	restaurant, err := h.restaurants.GetByID(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, settingsResponse{
		ID:             restaurant.ID,
		Name:           restaurant.Name,
		Slug:           restaurant.Slug,
		Description:    restaurant.Description,
		WhatsApp:       restaurant.WhatsApp,
		Address:        restaurant.Address,
		IsOpen:         restaurant.IsOpen,
		MinOrderValue:  menu.FormatCents(restaurant.MinOrderValue),
		AllowsDelivery: restaurant.AllowsDelivery,
	})
}

type updateSettingsRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	WhatsApp       *string `json:"whatsapp"`
	Address        *string `json:"address"`
	IsOpen         *bool   `json:"is_open"`
	MinOrderValue  *string `json:"min_order_value"` // decimal, e.g. "30.00"
	AllowsDelivery *bool   `json:"allows_delivery"`
}

// Update handles PATCH /api/admin/restaurants/{id}
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid restaurant id")
		return
	}

	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	params := domain.UpdateRestaurantParams{
		Name:           req.Name,
		Description:    req.Description,
		WhatsApp:       req.WhatsApp,
		Address:        req.Address,
		IsOpen:         req.IsOpen,
		AllowsDelivery: req.AllowsDelivery,
	}

	if req.MinOrderValue != nil {
		cents, err := menu.ParsePrice(*req.MinOrderValue)
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
		params.MinOrderValue = &cents
	}

	if err := h.restaurants.UpdateSettings(r.Context(), id, params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("restaurant settings updated", "restaurant_id", id)
	w.WriteHeader(http.StatusNoContent)
}
