package storefront

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cardap-io/cardap/internal/cart"
	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/handler"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/cardap-io/cardap/internal/service"
)

// CheckoutHandler turns the session cart into a WhatsApp order hand-off.
type CheckoutHandler struct {
	restaurants domain.RestaurantService
	checkout    service.CheckoutService
	store       *cart.Store
	logger      *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(restaurants domain.RestaurantService, checkout service.CheckoutService, store *cart.Store, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		restaurants: restaurants,
		checkout:    checkout,
		store:       store,
		logger:      logger,
	}
}

type checkoutRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

type checkoutResponse struct {
	Message      string `json:"message"`
	WhatsAppURL  string `json:"whatsapp_url"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
}

// Submit handles POST /api/menu/{slug}/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	restaurant, err := h.restaurants.GetBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	c := h.store.Get(GetSessionToken(r))
	if c == nil {
		handler.ErrorResponse(w, r, domain.ErrCartEmpty)
		return
	}

	info := domain.CustomerInfo{
		Name:          req.Name,
		Address:       req.Address,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}

	handoff, err := h.checkout.Submit(ctx, restaurant.ID, c, info)
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		if !errors.Is(err, domain.ErrRestaurantClosed) && !errors.Is(err, domain.ErrCartEmpty) {
			h.logger.Warn("checkout rejected", "slug", restaurant.Slug, "error", err)
		}
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("order handed off",
		"slug", restaurant.Slug,
		"total", handoff.TotalPrice,
	)

	handler.RespondJSON(w, http.StatusOK, checkoutResponse{
		Message:      handoff.Message,
		WhatsAppURL:  handoff.WhatsAppURL,
		Total:        handoff.TotalPrice,
		TotalDisplay: menu.FormatCents(handoff.TotalPrice),
	})
}
