package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order statuses. No endpoint transitions status; the values exist so the
// schema and serializers agree on the vocabulary.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusCancelled = "cancelled"
)

var (
	ErrCartEmpty      = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrDuplicateOrder = &Error{Code: ECONFLICT, Message: "Duplicate order"}
	ErrOrderFailed    = &Error{Code: EINTERNAL, Message: "Order creation failed"}
)

// Order is an immutable receipt created from a cart at checkout.
type Order struct {
	ID             int64
	UserID         *int64
	GuestToken     *uuid.UUID
	Email          string
	Phone          string
	Status         string
	TotalMinor     int64
	IdempotencyKey *string
	CreatedAt      time.Time
}

// OrderItem snapshots a cart line at order creation. Name and price are
// copied, never re-derived from the live catalog.
type OrderItem struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	NameSnapshot  string
	PriceSnapshot int64
	Qty           int
}

// OrderDetail aggregates an order with its items.
type OrderDetail struct {
	Order Order
	Items []OrderItem
}

// CreateOrderParams are the inputs for materializing an order from the
// caller's current cart.
type CreateOrderParams struct {
	Email string
	Phone string

	// IdempotencyKey is the optional Idempotency-Key header value. A repeat
	// key makes Create return ErrDuplicateOrder without touching the cart.
	IdempotencyKey string

	// GuestTokenFallback is the guest_token query parameter, consulted for
	// guests when no cookie is present.
	GuestTokenFallback string
}

// OrderService converts carts into orders and lists a user's order history.
type OrderService interface {
	// Create materializes the identity's cart into an order atomically:
	// the order row, its item snapshots and the cart-emptying all commit or
	// roll back together. Returns ErrDuplicateOrder for a repeated
	// idempotency key and ErrCartEmpty for a cart with no items.
	Create(ctx context.Context, ident Identity, params CreateOrderParams) (*OrderDetail, error)

	// ListForUser returns the user's orders, items included.
	ListForUser(ctx context.Context, userID int64) ([]OrderDetail, error)
}
