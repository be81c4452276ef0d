package routes

import (
	"github.com/cardap-io/cardap/internal/router"
)

// RegisterAdminRoutes registers the restaurant management API.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	// Restaurant settings
	r.Get("/api/admin/restaurants/{id}", deps.SettingsHandler.Get)
	r.Patch("/api/admin/restaurants/{id}", deps.SettingsHandler.Update)

	// Categories
	r.Get("/api/admin/restaurants/{id}/categories", deps.CategoryHandler.List)
	r.Post("/api/admin/restaurants/{id}/categories", deps.CategoryHandler.Create)
	r.Put("/api/admin/categories/{id}", deps.CategoryHandler.Update)
	r.Delete("/api/admin/categories/{id}", deps.CategoryHandler.Delete)

	// Products
	r.Get("/api/admin/restaurants/{id}/products", deps.ProductHandler.List)
	r.Post("/api/admin/restaurants/{id}/products", deps.ProductHandler.Create)
	r.Patch("/api/admin/products/{id}", deps.ProductHandler.Update)
	r.Delete("/api/admin/products/{id}", deps.ProductHandler.Delete)

	// Extras
	r.Get("/api/admin/products/{id}/extras", deps.ProductHandler.ListExtras)
	r.Post("/api/admin/products/{id}/extras", deps.ProductHandler.CreateExtra)
	r.Patch("/api/admin/extras/{id}", deps.ProductHandler.UpdateExtra)
	r.Delete("/api/admin/extras/{id}", deps.ProductHandler.DeleteExtra)

	// Private variation groups and options
	r.Get("/api/admin/products/{id}/groups", deps.VariationHandler.ListGroups)
	r.Post("/api/admin/products/{id}/groups", deps.VariationHandler.CreateGroup)
	r.Patch("/api/admin/groups/{id}", deps.VariationHandler.UpdateGroup)
	r.Delete("/api/admin/groups/{id}", deps.VariationHandler.DeleteGroup)
	r.Get("/api/admin/groups/{id}/options", deps.VariationHandler.ListOptions)
	r.Post("/api/admin/groups/{id}/options", deps.VariationHandler.CreateOption)
	r.Patch("/api/admin/options/{id}", deps.VariationHandler.UpdateOption)
	r.Delete("/api/admin/options/{id}", deps.VariationHandler.DeleteOption)

	// Group templates, template options, and product assignments
	r.Get("/api/admin/restaurants/{id}/templates", deps.TemplateHandler.List)
	r.Post("/api/admin/restaurants/{id}/templates", deps.TemplateHandler.Create)
	r.Patch("/api/admin/templates/{id}", deps.TemplateHandler.Update)
	r.Delete("/api/admin/templates/{id}", deps.TemplateHandler.Delete)
	r.Get("/api/admin/templates/{id}/options", deps.TemplateHandler.ListOptions)
	r.Post("/api/admin/templates/{id}/options", deps.TemplateHandler.CreateOption)
	r.Delete("/api/admin/template-options/{id}", deps.TemplateHandler.DeleteOption)
	r.Get("/api/admin/products/{id}/templates", deps.TemplateHandler.ListAssignments)
	r.Post("/api/admin/products/{id}/templates", deps.TemplateHandler.Assign)
	r.Delete("/api/admin/assignments/{id}", deps.TemplateHandler.Unassign)
}
