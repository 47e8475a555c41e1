package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

const cartColumns = "id, user_id, guest_token, created_at, updated_at"

// CreateUserCart inserts an empty cart bound to the user. The statement races
// safely against concurrent first-requests for the same user: on conflict with
// the user_id unique index no row is returned and the caller falls back to
// GetCartByUserID.
func (q *Queries) CreateUserCart(ctx context.Context, userID int64) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING `+cartColumns,
		userID,
	)
	return scanCart(row)
}

// CreateGuestCart inserts an empty cart keyed by the guest token, with the
// same conflict semantics as CreateUserCart.
func (q *Queries) CreateGuestCart(ctx context.Context, token uuid.UUID) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO carts (guest_token)
		VALUES ($1)
		ON CONFLICT (guest_token) DO NOTHING
		RETURNING `+cartColumns,
		token,
	)
	return scanCart(row)
}

func (q *Queries) GetCartByUserID(ctx context.Context, userID int64) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+cartColumns+`
		FROM carts
		WHERE user_id = $1`,
		userID,
	)
	return scanCart(row)
}

// GetGuestCart returns the cart for the token. The user_id IS NULL predicate
// is load-bearing: a merged (re-pointed) cart must stop resolving as a guest
// cart even if a stale token is replayed.
func (q *Queries) GetGuestCart(ctx context.Context, token uuid.UUID) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+cartColumns+`
		FROM carts
		WHERE guest_token = $1 AND user_id IS NULL`,
		token,
	)
	return scanCart(row)
}

type RepointCartToUserParams struct {
	CartID int64
	UserID int64
}

// RepointCartToUser converts a guest cart into the user's cart in place.
func (q *Queries) RepointCartToUser(ctx context.Context, params RepointCartToUserParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE carts
		SET user_id = $2, guest_token = NULL, updated_at = now()
		WHERE id = $1`,
		params.CartID, params.UserID,
	)
	return err
}

func (q *Queries) DeleteCart(ctx context.Context, cartID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	return err
}

func (q *Queries) TouchCart(ctx context.Context, cartID int64) error {
	_, err := q.db.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}

type UpsertCartItemParams struct {
	CartID        int64
	ProductID     int64
	Qty           int
	PriceSnapshot int64
}

// UpsertCartItemRow reports the resulting line plus whether the statement
// inserted a new row (false means an existing line's qty was incremented).
type UpsertCartItemRow struct {
	Item     domain.CartItem
	Inserted bool
}

// UpsertCartItem adds a product to a cart, incrementing qty when the product
// is already present. The DO UPDATE clause deliberately leaves price_snapshot
// alone: the price is locked in from the first add. The xmax = 0 expression
// distinguishes a fresh insert from an update of an existing row.
func (q *Queries) UpsertCartItem(ctx context.Context, params UpsertCartItemParams) (UpsertCartItemRow, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO cart_items (cart_id, product_id, qty, price_snapshot)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty
		RETURNING id, cart_id, product_id, qty, price_snapshot, (xmax = 0) AS inserted`,
		params.CartID, params.ProductID, params.Qty, params.PriceSnapshot,
	)

	var out UpsertCartItemRow
	err := row.Scan(
		&out.Item.ID,
		&out.Item.CartID,
		&out.Item.ProductID,
		&out.Item.Qty,
		&out.Item.PriceSnapshot,
		&out.Inserted,
	)
	if err != nil {
		return UpsertCartItemRow{}, fmt.Errorf("upsert cart item: %w", err)
	}
	return out, nil
}

func (q *Queries) GetCartItems(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, cart_id, product_id, qty, price_snapshot
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id`,
		cartID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Qty, &it.PriceSnapshot); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetCartItemsWithProduct joins each line with its product's display fields.
func (q *Queries) GetCartItemsWithProduct(ctx context.Context, cartID int64) ([]domain.CartViewItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT ci.id, ci.product_id, ci.qty, ci.price_snapshot, p.id, p.name, p.slug
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`,
		cartID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartViewItem
	for rows.Next() {
		var it domain.CartViewItem
		err := rows.Scan(
			&it.ID, &it.ProductID, &it.Qty, &it.PriceSnapshot,
			&it.Product.ID, &it.Product.Name, &it.Product.Slug,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type UpdateCartItemQtyParams struct {
	ID     int64
	CartID int64
	Qty    int
}

// UpdateCartItemQty overwrites a line's quantity. Returns ErrNoRows when the
// line does not belong to the cart.
func (q *Queries) UpdateCartItemQty(ctx context.Context, params UpdateCartItemQtyParams) error {
	var id int64
	return q.db.QueryRow(ctx, `
		UPDATE cart_items
		SET qty = $3
		WHERE id = $1 AND cart_id = $2
		RETURNING id`,
		params.ID, params.CartID, params.Qty,
	).Scan(&id)
}

type DeleteCartItemParams struct {
	ID     int64
	CartID int64
}

// DeleteCartItem removes a line. Returns ErrNoRows when the line does not
// belong to the cart.
func (q *Queries) DeleteCartItem(ctx context.Context, params DeleteCartItemParams) error {
	var id int64
	return q.db.QueryRow(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND cart_id = $2
		RETURNING id`,
		params.ID, params.CartID,
	).Scan(&id)
}

func (q *Queries) DeleteCartItems(ctx context.Context, cartID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func scanCart(row interface{ Scan(dest ...any) error }) (domain.Cart, error) {
	var c domain.Cart
	err := row.Scan(&c.ID, &c.UserID, &c.GuestToken, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}
