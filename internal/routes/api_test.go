package routes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/handler/api"
	"github.com/Observer7203/Online-Store-Test/internal/middleware"
	"github.com/Observer7203/Online-Store-Test/internal/router"
)

// Stub services so the route table can be exercised end to end through the
// mux. Each method returns an empty success.

type stubCartService struct{}

func (stubCartService) Resolve(context.Context, domain.Identity) (*domain.CartView, domain.CookieDirective, error) {
	return &domain.CartView{}, domain.CookieDirective{}, nil
}

func (stubCartService) AddItem(context.Context, domain.Identity, int64, int) (*domain.CartView, bool, domain.CookieDirective, error) {
	return &domain.CartView{}, true, domain.CookieDirective{}, nil
}

func (stubCartService) UpdateItem(context.Context, domain.Identity, int64, int) (*domain.CartView, domain.CookieDirective, error) {
	return &domain.CartView{}, domain.CookieDirective{}, nil
}

func (stubCartService) RemoveItem(context.Context, domain.Identity, int64) (*domain.CartView, domain.CookieDirective, error) {
	return &domain.CartView{}, domain.CookieDirective{}, nil
}

type stubOrderService struct{}

func (stubOrderService) Create(context.Context, domain.Identity, domain.CreateOrderParams) (*domain.OrderDetail, error) {
	return &domain.OrderDetail{}, nil
}

func (stubOrderService) ListForUser(context.Context, int64) ([]domain.OrderDetail, error) {
	return nil, nil
}

type stubProductService struct{}

func (stubProductService) List(context.Context, domain.ProductFilter) (*domain.ProductPage, error) {
	return &domain.ProductPage{Items: []domain.ProductDetail{}, CurrentPage: 1, LastPage: 1, PerPage: 10}, nil
}

func (stubProductService) GetBySlug(context.Context, string) (*domain.ProductDetail, error) {
	return &domain.ProductDetail{}, nil
}

func (stubProductService) ResolveAttrFilters(context.Context, map[string][]string) ([]domain.AttrFilter, error) {
	return nil, nil
}

func (stubProductService) Create(context.Context, domain.CreateProductParams) (*domain.Product, error) {
	return &domain.Product{}, nil
}

func (stubProductService) Delete(context.Context, int64) error { return nil }

type stubCategoryService struct{}

func (stubCategoryService) Tree(context.Context) ([]domain.CategoryNode, error) { return nil, nil }

type stubAttributeService struct{}

func (stubAttributeService) List(context.Context) ([]domain.Attribute, error) { return nil, nil }

func (stubAttributeService) Create(context.Context, domain.CreateAttributeParams) (*domain.Attribute, error) {
	return &domain.Attribute{}, nil
}

func (stubAttributeService) Delete(context.Context, int64) error { return nil }

type stubUserService struct{}

func (stubUserService) Register(context.Context, domain.RegisterParams) (*domain.User, string, error) {
	return &domain.User{ID: 1}, "token", nil
}

func (stubUserService) Login(context.Context, string, string) (*domain.User, string, error) {
	return &domain.User{ID: 1}, "token", nil
}

func (stubUserService) Logout(context.Context, string) error { return nil }

func (stubUserService) Authenticate(_ context.Context, token string) (*domain.User, error) {
	switch token {
	case "user-token":
		return &domain.User{ID: 1}, nil
	case "admin-token":
		return &domain.User{ID: 2, IsAdmin: true}, nil
	default:
		return nil, domain.ErrTokenNotFound
	}
}

func newTestRouter() *router.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	passthrough := router.Middleware(func(next http.Handler) http.Handler { return next })

	r := router.New(middleware.WithUser(stubUserService{}))
	RegisterAPIRoutes(r, APIDeps{
		ProductHandler:   api.NewProductHandler(stubProductService{}, logger),
		CategoryHandler:  api.NewCategoryHandler(stubCategoryService{}, logger),
		AttributeHandler: api.NewAttributeHandler(stubAttributeService{}, logger),
		CartHandler:      api.NewCartHandler(stubCartService{}, logger),
		OrderHandler:     api.NewOrderHandler(stubOrderService{}, logger),
		AuthHandler:      api.NewAuthHandler(stubUserService{}, logger),
		AuthRateLimit:    passthrough,
		CatalogRateLimit: passthrough,
	})
	return r
}

func TestRegisterAPIRoutes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
	}{
		{"view cart", http.MethodGet, "/api/cart", "", "", http.StatusOK},
		{"add cart item", http.MethodPost, "/api/cart", "", `{"product_id": 1, "qty": 1}`, http.StatusCreated},
		{"update cart item", http.MethodPut, "/api/cart/7", "", `{"qty": 2}`, http.StatusOK},
		{"remove cart item", http.MethodDelete, "/api/cart/7", "", "", http.StatusOK},
		{"checkout", http.MethodPost, "/api/orders", "", `{"email": "a@b.c", "phone": "1"}`, http.StatusCreated},
		{"order history unauthenticated", http.MethodGet, "/api/orders", "", "", http.StatusUnauthorized},
		{"order history", http.MethodGet, "/api/orders", "user-token", "", http.StatusOK},
		{"product list", http.MethodGet, "/api/products", "", "", http.StatusOK},
		{"product detail", http.MethodGet, "/api/products/widget", "", "", http.StatusOK},
		{"category tree", http.MethodGet, "/api/categories/tree", "", "", http.StatusOK},
		{"attribute list is public", http.MethodGet, "/api/attributes", "", "", http.StatusOK},
		{"product create needs auth", http.MethodPost, "/api/products", "", `{"name": "W", "slug": "w", "price_minor": 1}`, http.StatusUnauthorized},
		{"product create allows non-admin", http.MethodPost, "/api/products", "user-token", `{"name": "W", "slug": "w", "price_minor": 1}`, http.StatusCreated},
		{"attribute create needs admin", http.MethodPost, "/api/attributes", "user-token", `{"name": "Color", "code": "color", "type": "string"}`, http.StatusForbidden},
		{"attribute create", http.MethodPost, "/api/attributes", "admin-token", `{"name": "Color", "code": "color", "type": "string"}`, http.StatusCreated},
		{"register", http.MethodPost, "/api/auth/register", "", `{"name": "A", "email": "a@b.c", "password": "long enough"}`, http.StatusCreated},
		{"login", http.MethodPost, "/api/auth/login", "", `{"email": "a@b.c", "password": "long enough"}`, http.StatusOK},
		{"logout", http.MethodPost, "/api/auth/logout", "user-token", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d (body: %s)", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRegisterAPIRoutes_OldItemPathsGone(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"product_id": 1, "qty": 1}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound && w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/cart/items = %d, want unrouted", w.Code)
	}
}
