package routes

import (
	"github.com/cardap-io/cardap/internal/handler/admin"
	"github.com/cardap-io/cardap/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for the public storefront routes
type StorefrontDeps struct {
	MenuHandler     *storefront.MenuHandler
	CartHandler     *storefront.CartHandler
	CheckoutHandler *storefront.CheckoutHandler
}

// AdminDeps contains dependencies for restaurant management routes
type AdminDeps struct {
	SettingsHandler  *admin.SettingsHandler
	CategoryHandler  *admin.CategoryHandler
	ProductHandler   *admin.ProductHandler
	VariationHandler *admin.VariationHandler
	TemplateHandler  *admin.TemplateHandler
}
