package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cardap-io/cardap/internal/cart"
	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/handler"
	"github.com/cardap-io/cardap/internal/menu"
	"github.com/google/uuid"
)

// sessionMaxAge matches the cart store TTL.
const sessionMaxAge = 12 * 60 * 60

// CartHandler handles all cart-related storefront routes. The cart lives
// only in the server's session store; every response carries the full cart
// state so the client never tracks totals itself.
type CartHandler struct {
	store   *cart.Store
	catalog domain.CatalogService
	logger  *slog.Logger
	secure  bool
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store *cart.Store, catalog domain.CatalogService, logger *slog.Logger, secure bool) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		store:   store,
		catalog: catalog,
		logger:  logger,
		secure:  secure,
	}
}

type lineView struct {
	Index         int      `json:"index"`
	ProductID     string   `json:"product_id"`
	Name          string   `json:"name"`
	Quantity      int      `json:"quantity"`
	UnitPrice     int64    `json:"unit_price"`
	TotalPrice    int64    `json:"total_price"`
	PriceDisplay  string   `json:"price_display"`
	Variations    []string `json:"variations,omitempty"`
	Extras        []string `json:"extras,omitempty"`
	Observations  string   `json:"observations,omitempty"`
}

type cartResponse struct {
	Lines        []lineView `json:"lines"`
	ItemCount    int        `json:"item_count"`
	Total        int64      `json:"total"`
	TotalDisplay string     `json:"total_display"`
}

func cartView(c *cart.Cart) cartResponse {
	resp := cartResponse{Lines: []lineView{}}
	for i, l := range c.Lines() {
		lv := lineView{
			Index:        i,
			ProductID:    l.Product.ID.String(),
			Name:         l.Product.Name,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice(),
			TotalPrice:   l.TotalPrice,
			PriceDisplay: menu.FormatCents(l.TotalPrice),
			Observations: l.Observations,
		}
		for _, v := range l.SelectedVariations {
			lv.Variations = append(lv.Variations, v.GroupName+": "+v.OptionName)
		}
		for _, e := range l.SelectedExtras {
			lv.Extras = append(lv.Extras, e.Name)
		}
		resp.Lines = append(resp.Lines, lv)
	}
	resp.ItemCount = c.ItemCount()
	resp.Total = c.Total()
	resp.TotalDisplay = menu.FormatCents(resp.Total)
	return resp
}

// View handles GET /api/menu/{slug}/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	c := h.store.Get(GetSessionToken(r))
	if c == nil {
		handler.RespondJSON(w, http.StatusOK, cartView(cart.New()))
		return
	}
	handler.RespondJSON(w, http.StatusOK, cartView(c))
}

type addItemRequest struct {
	ProductID    uuid.UUID              `json:"product_id"`
	Quantity     int                    `json:"quantity"`
	Options      map[string][]uuid.UUID `json:"options"` // group ID -> option IDs
	Extras       []uuid.UUID            `json:"extras"`
	Observations string                 `json:"observations"`
}

// AddItem handles POST /api/menu/{slug}/cart/items
//
// The server replays the client's choices through the selection engine, so
// cardinality rules and pricing are enforced here no matter what the client
// sends.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	cfg, err := h.catalog.GetProductConfiguration(ctx, req.ProductID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if !cfg.Product.IsAvailable {
		handler.ErrorResponse(w, r, domain.ErrProductNotFound)
		return
	}

	sel := menu.NewSelection(cfg.Groups, cfg.Options, cfg.Extras)

	for groupIDStr, optionIDs := range req.Options {
		groupID, err := uuid.Parse(groupIDStr)
		if err != nil {
			handler.BadRequestResponse(w, r, "invalid variation group id")
			return
		}
		for _, optionID := range optionIDs {
			result, err := sel.ToggleOption(groupID, optionID)
			if err != nil {
				handler.ErrorResponse(w, r, err)
				return
			}
			if result.LimitReached {
				handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "cart.add_item",
					"no máximo %d opções podem ser escolhidas", result.MaxSelections))
				return
			}
		}
	}

	for _, extraID := range req.Extras {
		if _, err := sel.ToggleExtra(extraID); err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
	}

	if !sel.CanSubmit() {
		var verr error
		for _, g := range sel.MissingGroups() {
			msg := "Escolha uma opção"
			if g.AllowMultiple {
				msg = "Escolha " + strconv.Itoa(int(g.MaxSelections)) + " opções"
			}
			verr = domain.AddFieldError(verr, g.Name, msg)
		}
		handler.ValidationErrorResponse(w, r, verr)
		return
	}

	observations := ""
	if cfg.Product.AllowsObservations {
		observations = req.Observations
	}

	c, token, err := h.store.GetOrCreate(GetSessionToken(r))
	if err != nil {
		h.logger.Error("failed to create cart session", "error", err)
		handler.ErrorResponse(w, r, domain.Internal(err, "cart.session", "failed to create cart session"))
		return
	}
	SetSessionCookie(w, token, sessionMaxAge, h.secure)

	c.AddLine(cfg.Product, req.Quantity, sel.SelectedExtras(), sel.SelectedVariations(), observations)

	handler.RespondJSON(w, http.StatusCreated, cartView(c))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PATCH /api/menu/{slug}/cart/items/{index}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid line index")
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequestResponse(w, r, "invalid request body")
		return
	}

	c := h.store.Get(GetSessionToken(r))
	if c == nil {
		handler.NotFoundResponse(w, r)
		return
	}

	if err := c.UpdateQuantity(index, req.Quantity); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cartView(c))
}

// RemoveItem handles DELETE /api/menu/{slug}/cart/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		handler.BadRequestResponse(w, r, "invalid line index")
		return
	}

	c := h.store.Get(GetSessionToken(r))
	if c == nil {
		handler.NotFoundResponse(w, r)
		return
	}

	if err := c.RemoveLine(index); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cartView(c))
}
