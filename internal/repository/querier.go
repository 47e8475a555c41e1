package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// Querier is the full set of database operations. Services depend on this
// interface so tests can swap in an in-memory fake.
type Querier interface {
	BeginTx(ctx context.Context) (Tx, error)

	// Carts
	CreateUserCart(ctx context.Context, userID int64) (domain.Cart, error)
	CreateGuestCart(ctx context.Context, token uuid.UUID) (domain.Cart, error)
	GetCartByUserID(ctx context.Context, userID int64) (domain.Cart, error)
	GetGuestCart(ctx context.Context, token uuid.UUID) (domain.Cart, error)
	RepointCartToUser(ctx context.Context, params RepointCartToUserParams) error
	DeleteCart(ctx context.Context, cartID int64) error
	TouchCart(ctx context.Context, cartID int64) error

	// Cart items
	UpsertCartItem(ctx context.Context, params UpsertCartItemParams) (UpsertCartItemRow, error)
	GetCartItems(ctx context.Context, cartID int64) ([]domain.CartItem, error)
	GetCartItemsWithProduct(ctx context.Context, cartID int64) ([]domain.CartViewItem, error)
	UpdateCartItemQty(ctx context.Context, params UpdateCartItemQtyParams) error
	DeleteCartItem(ctx context.Context, params DeleteCartItemParams) error
	DeleteCartItems(ctx context.Context, cartID int64) error

	// Orders
	OrderIdempotencyKeyExists(ctx context.Context, key string) (bool, error)
	CreateOrder(ctx context.Context, params CreateOrderParams) (domain.Order, error)
	CreateOrderItem(ctx context.Context, params CreateOrderItemParams) (domain.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)

	// Products
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CountProductsFiltered(ctx context.Context, filter domain.ProductFilter) (int64, error)
	ListProductsFiltered(ctx context.Context, params ListProductsFilteredParams) ([]domain.Product, error)
	ListProductAttributeValues(ctx context.Context, productIDs []int64) ([]ProductAttributeValueRow, error)

	// Attributes
	ListAttributes(ctx context.Context) ([]domain.Attribute, error)
	GetAttributeByCode(ctx context.Context, code string) (domain.Attribute, error)
	CreateAttribute(ctx context.Context, params CreateAttributeParams) (domain.Attribute, error)
	DeleteAttribute(ctx context.Context, id int64) error

	// Categories
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (domain.Category, error)

	// Users and tokens
	CreateUser(ctx context.Context, params CreateUserParams) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	CreateAuthToken(ctx context.Context, params CreateAuthTokenParams) error
	GetUserByTokenDigest(ctx context.Context, digest string) (domain.User, error)
	DeleteAuthToken(ctx context.Context, digest string) error
}
