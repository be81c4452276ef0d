package routes

import (
	"github.com/cardap-io/cardap/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing routes. The menu
// is public and read-only; the cart and checkout operate on the caller's
// session cookie.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Menu browsing
	r.Get("/api/menu/{slug}", deps.MenuHandler.View)
	r.Get("/api/menu/{slug}/products/{id}", deps.MenuHandler.ProductConfiguration)

	// Session cart
	r.Get("/api/menu/{slug}/cart", deps.CartHandler.View)
	r.Post("/api/menu/{slug}/cart/items", deps.CartHandler.AddItem)
	r.Patch("/api/menu/{slug}/cart/items/{index}", deps.CartHandler.UpdateQuantity)
	r.Delete("/api/menu/{slug}/cart/items/{index}", deps.CartHandler.RemoveItem)

	// WhatsApp hand-off
	r.Post("/api/menu/{slug}/checkout", deps.CheckoutHandler.Submit)
}
