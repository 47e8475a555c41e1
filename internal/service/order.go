package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/events"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
)

// OrderService materializes carts into orders and serves order history.
type OrderService struct {
	repo      repository.Querier
	publisher *events.Publisher
	logger    *slog.Logger
}

var _ domain.OrderService = (*OrderService)(nil)

// NewOrderService wires the materializer. publisher may be nil, which
// disables event publishing.
func NewOrderService(repo repository.Querier, publisher *events.Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, logger: logger}
}

// Create converts the identity's cart into an order. The order row, its item
// snapshots and the cart emptying commit atomically; any failure inside the
// transaction leaves the cart untouched. A repeated Idempotency-Key returns
// ErrDuplicateOrder whether it is caught by the pre-check or by the unique
// index when two requests race.
func (s *OrderService) Create(ctx context.Context, ident domain.Identity, params domain.CreateOrderParams) (*domain.OrderDetail, error) {
	const op = "order.create"

	if params.IdempotencyKey != "" {
		exists, err := s.repo.OrderIdempotencyKeyExists(ctx, params.IdempotencyKey)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to check idempotency key")
		}
		if exists {
			return nil, domain.ErrDuplicateOrder
		}
	}

	cart, err := s.findCart(ctx, ident, params.GuestTokenFallback)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetCartItemsWithProduct(ctx, cart.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart items")
	}
	if len(items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	var total int64
	for _, it := range items {
		total += int64(it.Qty) * it.PriceSnapshot
	}

	var key *string
	if params.IdempotencyKey != "" {
		key = &params.IdempotencyKey
	}

	// The owner union picks exactly one of user_id and guest_token for the
	// order row: an authenticated checkout never records a guest token.
	var ownerUser *int64
	var ownerToken *uuid.UUID
	owner := cart.Owner()
	if id, ok := owner.User(); ok {
		ownerUser = &id
	}
	if tok, ok := owner.Guest(); ok {
		ownerToken = &tok
	}

	detail, err := s.materialize(ctx, cart, items, repository.CreateOrderParams{
		UserID:         ownerUser,
		GuestToken:     ownerToken,
		Email:          params.Email,
		Phone:          params.Phone,
		Status:         domain.OrderStatusPlaced,
		TotalMinor:     total,
		IdempotencyKey: key,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost the idempotency race to a concurrent request.
			return nil, domain.ErrDuplicateOrder
		}
		s.logger.Error("order creation failed",
			slog.Int64("cart_id", cart.ID),
			slog.Int("items", len(items)),
			slog.String("error", err.Error()),
		)
		return nil, domain.ErrOrderFailed
	}

	s.logger.Info("order created",
		slog.Int64("order_id", detail.Order.ID),
		slog.Int64("total_minor", detail.Order.TotalMinor),
		slog.Int("items", len(detail.Items)),
	)

	s.publishCreated(ctx, detail)
	return detail, nil
}

// ListForUser returns the user's orders with items, newest last.
func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]domain.OrderDetail, error) {
	const op = "order.list"

	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}

	details := make([]domain.OrderDetail, 0, len(orders))
	for _, o := range orders {
		items, err := s.repo.GetOrderItems(ctx, o.ID)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to load order items")
		}
		details = append(details, domain.OrderDetail{Order: o, Items: items})
	}
	return details, nil
}

// findCart locates the caller's existing cart without creating one; checkout
// never mints carts. Guests without a cookie may pass the token as a query
// parameter. A missing cart reads the same as an empty one.
func (s *OrderService) findCart(ctx context.Context, ident domain.Identity, fallback string) (domain.Cart, error) {
	if ident.UserID != nil {
		cart, err := s.repo.GetCartByUserID(ctx, *ident.UserID)
		if errors.Is(err, repository.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartEmpty
		}
		if err != nil {
			return domain.Cart{}, domain.Internal(err, "order.create", "failed to load cart")
		}
		return cart, nil
	}

	token := ident.GuestToken
	if token == nil && fallback != "" {
		parsed, err := uuid.Parse(fallback)
		if err != nil {
			return domain.Cart{}, domain.ErrCartEmpty
		}
		token = &parsed
	}
	if token == nil {
		return domain.Cart{}, domain.ErrCartEmpty
	}

	cart, err := s.repo.GetGuestCart(ctx, *token)
	if errors.Is(err, repository.ErrNoRows) {
		return domain.Cart{}, domain.ErrCartEmpty
	}
	if err != nil {
		return domain.Cart{}, domain.Internal(err, "order.create", "failed to load cart")
	}
	return cart, nil
}

func (s *OrderService) materialize(ctx context.Context, cart domain.Cart, items []domain.CartViewItem, params repository.CreateOrderParams) (*domain.OrderDetail, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	q := tx.Queries()

	order, err := q.CreateOrder(ctx, params)
	if err != nil {
		return nil, err
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		created, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
			OrderID:       order.ID,
			ProductID:     it.ProductID,
			NameSnapshot:  it.Product.Name,
			PriceSnapshot: it.PriceSnapshot,
			Qty:           it.Qty,
		})
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, created)
	}

	if err := q.DeleteCartItems(ctx, cart.ID); err != nil {
		return nil, err
	}
	if err := q.TouchCart(ctx, cart.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.OrderDetail{Order: order, Items: orderItems}, nil
}

func (s *OrderService) publishCreated(ctx context.Context, detail *domain.OrderDetail) {
	if s.publisher == nil {
		return
	}

	ev := events.OrderCreated{
		OrderID:    detail.Order.ID,
		UserID:     detail.Order.UserID,
		Email:      detail.Order.Email,
		Status:     detail.Order.Status,
		TotalMinor: detail.Order.TotalMinor,
		CreatedAt:  detail.Order.CreatedAt,
	}
	for _, it := range detail.Items {
		ev.Items = append(ev.Items, events.OrderCreatedItem{
			ProductID:     it.ProductID,
			Name:          it.NameSnapshot,
			PriceSnapshot: it.PriceSnapshot,
			Qty:           it.Qty,
		})
	}
	s.publisher.PublishOrderCreated(ctx, ev)
}
