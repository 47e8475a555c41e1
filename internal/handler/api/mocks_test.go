package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockCartService implements domain.CartService with overridable functions.
type mockCartService struct {
	resolveFunc    func(ctx context.Context, ident domain.Identity) (*domain.CartView, domain.CookieDirective, error)
	addItemFunc    func(ctx context.Context, ident domain.Identity, productID int64, qty int) (*domain.CartView, bool, domain.CookieDirective, error)
	updateItemFunc func(ctx context.Context, ident domain.Identity, itemID int64, qty int) (*domain.CartView, domain.CookieDirective, error)
	removeItemFunc func(ctx context.Context, ident domain.Identity, itemID int64) (*domain.CartView, domain.CookieDirective, error)
}

func (m *mockCartService) Resolve(ctx context.Context, ident domain.Identity) (*domain.CartView, domain.CookieDirective, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, ident)
	}
	return &domain.CartView{}, domain.CookieDirective{}, nil
}

func (m *mockCartService) AddItem(ctx context.Context, ident domain.Identity, productID int64, qty int) (*domain.CartView, bool, domain.CookieDirective, error) {
	if m.addItemFunc != nil {
		return m.addItemFunc(ctx, ident, productID, qty)
	}
	return &domain.CartView{}, false, domain.CookieDirective{}, nil
}

func (m *mockCartService) UpdateItem(ctx context.Context, ident domain.Identity, itemID int64, qty int) (*domain.CartView, domain.CookieDirective, error) {
	if m.updateItemFunc != nil {
		return m.updateItemFunc(ctx, ident, itemID, qty)
	}
	return &domain.CartView{}, domain.CookieDirective{}, nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, ident domain.Identity, itemID int64) (*domain.CartView, domain.CookieDirective, error) {
	if m.removeItemFunc != nil {
		return m.removeItemFunc(ctx, ident, itemID)
	}
	return &domain.CartView{}, domain.CookieDirective{}, nil
}

// mockOrderService implements domain.OrderService.
type mockOrderService struct {
	createFunc      func(ctx context.Context, ident domain.Identity, params domain.CreateOrderParams) (*domain.OrderDetail, error)
	listForUserFunc func(ctx context.Context, userID int64) ([]domain.OrderDetail, error)
}

func (m *mockOrderService) Create(ctx context.Context, ident domain.Identity, params domain.CreateOrderParams) (*domain.OrderDetail, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, ident, params)
	}
	return &domain.OrderDetail{}, nil
}

func (m *mockOrderService) ListForUser(ctx context.Context, userID int64) ([]domain.OrderDetail, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, userID)
	}
	return nil, nil
}

// mockProductService implements domain.ProductService.
type mockProductService struct {
	listFunc               func(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error)
	getBySlugFunc          func(ctx context.Context, slug string) (*domain.ProductDetail, error)
	resolveAttrFiltersFunc func(ctx context.Context, raw map[string][]string) ([]domain.AttrFilter, error)
	createFunc             func(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error)
	deleteFunc             func(ctx context.Context, id int64) error
}

func (m *mockProductService) List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return &domain.ProductPage{Items: []domain.ProductDetail{}, CurrentPage: 1, LastPage: 1, PerPage: 10}, nil
}

func (m *mockProductService) GetBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return &domain.ProductDetail{}, nil
}

func (m *mockProductService) ResolveAttrFilters(ctx context.Context, raw map[string][]string) ([]domain.AttrFilter, error) {
	if m.resolveAttrFiltersFunc != nil {
		return m.resolveAttrFiltersFunc(ctx, raw)
	}
	return nil, nil
}

func (m *mockProductService) Create(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return &domain.Product{}, nil
}

func (m *mockProductService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockUserService implements domain.UserService.
type mockUserService struct {
	registerFunc     func(ctx context.Context, params domain.RegisterParams) (*domain.User, string, error)
	loginFunc        func(ctx context.Context, email, password string) (*domain.User, string, error)
	logoutFunc       func(ctx context.Context, token string) error
	authenticateFunc func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, params domain.RegisterParams) (*domain.User, string, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, params)
	}
	return &domain.User{}, "token", nil
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return &domain.User{}, "token", nil
}

func (m *mockUserService) Logout(ctx context.Context, token string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, token)
	}
	return nil
}

func (m *mockUserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, token)
	}
	return nil, domain.ErrTokenNotFound
}

// mockCategoryService implements domain.CategoryService.
type mockCategoryService struct {
	treeFunc func(ctx context.Context) ([]domain.CategoryNode, error)
}

func (m *mockCategoryService) Tree(ctx context.Context) ([]domain.CategoryNode, error) {
	if m.treeFunc != nil {
		return m.treeFunc(ctx)
	}
	return []domain.CategoryNode{}, nil
}

// mockAttributeService implements domain.AttributeService.
type mockAttributeService struct {
	listFunc   func(ctx context.Context) ([]domain.Attribute, error)
	createFunc func(ctx context.Context, params domain.CreateAttributeParams) (*domain.Attribute, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockAttributeService) List(ctx context.Context) ([]domain.Attribute, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Attribute{}, nil
}

func (m *mockAttributeService) Create(ctx context.Context, params domain.CreateAttributeParams) (*domain.Attribute, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return &domain.Attribute{}, nil
}

func (m *mockAttributeService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
