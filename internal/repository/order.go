package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

const orderColumns = "id, user_id, guest_token, email, phone, status, total_minor, idempotency_key, created_at"

func (q *Queries) OrderIdempotencyKeyExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE idempotency_key = $1)`,
		key,
	).Scan(&exists)
	return exists, err
}

type CreateOrderParams struct {
	UserID         *int64
	GuestToken     *uuid.UUID
	Email          string
	Phone          string
	Status         string
	TotalMinor     int64
	IdempotencyKey *string
}

func (q *Queries) CreateOrder(ctx context.Context, params CreateOrderParams) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, guest_token, email, phone, status, total_minor, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		params.UserID, params.GuestToken, params.Email, params.Phone,
		params.Status, params.TotalMinor, params.IdempotencyKey,
	)
	return scanOrder(row)
}

type CreateOrderItemParams struct {
	OrderID       int64
	ProductID     int64
	NameSnapshot  string
	PriceSnapshot int64
	Qty           int
}

func (q *Queries) CreateOrderItem(ctx context.Context, params CreateOrderItemParams) (domain.OrderItem, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO order_items (order_id, product_id, name_snapshot, price_snapshot, qty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_id, product_id, name_snapshot, price_snapshot, qty`,
		params.OrderID, params.ProductID, params.NameSnapshot, params.PriceSnapshot, params.Qty,
	)

	var it domain.OrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.NameSnapshot, &it.PriceSnapshot, &it.Qty)
	if err != nil {
		return domain.OrderItem{}, err
	}
	return it, nil
}

func (q *Queries) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (q *Queries) GetOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, order_id, product_id, name_snapshot, price_snapshot, qty
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.NameSnapshot, &it.PriceSnapshot, &it.Qty); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row interface{ Scan(dest ...any) error }) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.GuestToken, &o.Email, &o.Phone,
		&o.Status, &o.TotalMinor, &o.IdempotencyKey, &o.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}
