package routes

import (
	"github.com/Observer7203/Online-Store-Test/internal/middleware"
	"github.com/Observer7203/Online-Store-Test/internal/router"
)

// RegisterAPIRoutes registers the JSON API under /api.
//
// Catalog reads and the cart are public; the cart routes resolve the caller
// from the bearer token and guest cookie, so the same endpoints serve guests
// and users. Checkout is public too (guest checkout). Order history and
// product writes need authentication; attribute writes need an admin.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog
	r.Get("/api/products", deps.ProductHandler.List, deps.CatalogRateLimit)
	r.Get("/api/products/{slug}", deps.ProductHandler.Show, deps.CatalogRateLimit)
	r.Get("/api/categories/tree", deps.CategoryHandler.Tree, deps.CatalogRateLimit)
	r.Get("/api/attributes", deps.AttributeHandler.List, deps.CatalogRateLimit)

	// Cart
	r.Get("/api/cart", deps.CartHandler.View)
	r.Post("/api/cart", deps.CartHandler.AddItem)
	r.Put("/api/cart/{id}", deps.CartHandler.UpdateItem)
	r.Delete("/api/cart/{id}", deps.CartHandler.RemoveItem)

	// Checkout
	r.Post("/api/orders", deps.OrderHandler.Create)

	// Auth
	r.Post("/api/auth/register", deps.AuthHandler.Register, deps.AuthRateLimit)
	r.Post("/api/auth/login", deps.AuthHandler.Login, deps.AuthRateLimit)

	// Authenticated routes
	authed := r.Group(middleware.RequireAuth)
	authed.Post("/api/auth/logout", deps.AuthHandler.Logout)
	authed.Get("/api/orders", deps.OrderHandler.List)
	authed.Post("/api/products", deps.ProductHandler.Create)
	authed.Delete("/api/products/{id}", deps.ProductHandler.Delete)

	// Admin routes
	admin := r.Group(middleware.RequireAdmin)
	admin.Post("/api/attributes", deps.AttributeHandler.Create)
	admin.Delete("/api/attributes/{id}", deps.AttributeHandler.Delete)
}
