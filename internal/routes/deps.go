package routes

import (
	"github.com/Observer7203/Online-Store-Test/internal/handler/api"
	"github.com/Observer7203/Online-Store-Test/internal/router"
)

// APIDeps contains handlers and route-level middleware for the JSON API.
type APIDeps struct {
	ProductHandler   *api.ProductHandler
	CategoryHandler  *api.CategoryHandler
	AttributeHandler *api.AttributeHandler
	CartHandler      *api.CartHandler
	OrderHandler     *api.OrderHandler
	AuthHandler      *api.AuthHandler

	// AuthRateLimit guards credential endpoints against brute force.
	AuthRateLimit router.Middleware

	// CatalogRateLimit guards the public read endpoints.
	CatalogRateLimit router.Middleware
}
