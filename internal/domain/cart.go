package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// Cart is a persisted shopping cart. Exactly one of UserID and GuestToken is
// set; the database enforces the exclusivity.
type Cart struct {
	ID         int64
	UserID     *int64
	GuestToken *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Owner returns the cart's owner as a tagged union.
func (c Cart) Owner() CartOwner {
	if c.UserID != nil {
		return OwnerUser(*c.UserID)
	}
	if c.GuestToken != nil {
		return OwnerGuest(*c.GuestToken)
	}
	return CartOwner{}
}

// CartOwner identifies who a cart belongs to: a user id or a guest token,
// never both.
type CartOwner struct {
	userID int64
	token  uuid.UUID
	isUser bool
	set    bool
}

// OwnerUser builds a user-owned identity.
func OwnerUser(userID int64) CartOwner {
	return CartOwner{userID: userID, isUser: true, set: true}
}

// OwnerGuest builds a guest-owned identity.
func OwnerGuest(token uuid.UUID) CartOwner {
	return CartOwner{token: token, set: true}
}

// User reports the user id when the owner is an authenticated user.
func (o CartOwner) User() (int64, bool) {
	return o.userID, o.set && o.isUser
}

// Guest reports the guest token when the owner is anonymous.
func (o CartOwner) Guest() (uuid.UUID, bool) {
	return o.token, o.set && !o.isUser
}

// Identity describes the caller of a cart-touching request: an optional
// authenticated user id plus whatever guest token rode in on the request.
// Both may be set at once (a user who shopped anonymously before logging in);
// that combination is what triggers the guest-to-user merge.
type Identity struct {
	UserID     *int64
	GuestToken *uuid.UUID
}

// CookieAction tells the HTTP boundary what to do with the guest_token cookie
// after cart resolution. The services never touch the response themselves.
type CookieAction int

const (
	CookieNone CookieAction = iota
	CookieSetGuestToken
	CookieClearGuestToken
)

// CookieDirective pairs an action with the token to set, when applicable.
type CookieDirective struct {
	Action CookieAction
	Token  uuid.UUID
}

// CartItem is a cart line. PriceSnapshot is the product's price in minor
// units captured the first time the product was added; later quantity changes
// and catalog edits never touch it.
type CartItem struct {
	ID            int64
	CartID        int64
	ProductID     int64
	Qty           int
	PriceSnapshot int64
}

// ProductRef carries the product display fields joined into cart views.
type ProductRef struct {
	ID   int64
	Name string
	Slug string
}

// CartViewItem is a cart line joined with its product.
type CartViewItem struct {
	ID            int64
	ProductID     int64
	Qty           int
	PriceSnapshot int64
	Product       ProductRef
}

// CartView is a cart with items loaded and the total computed on read as
// the sum of qty times price snapshot. The total is never stored.
type CartView struct {
	ID         int64
	UserID     *int64
	GuestToken *uuid.UUID
	TotalMinor int64
	Items      []CartViewItem
}

// CartService resolves and mutates the current cart for a request identity.
type CartService interface {
	// Resolve finds or creates the single cart for the identity, merging a
	// non-empty guest cart into the user's cart at the moment of
	// authentication. The returned directive tells the HTTP layer how to
	// adjust the guest_token cookie.
	Resolve(ctx context.Context, ident Identity) (*CartView, CookieDirective, error)

	// AddItem adds a product to the resolved cart, or increments quantity if
	// the product is already present. The bool reports whether a new line was
	// created (a 201 response) rather than incremented (200).
	AddItem(ctx context.Context, ident Identity, productID int64, qty int) (*CartView, bool, CookieDirective, error)

	// UpdateItem overwrites a line's quantity. Fails with ErrCartItemNotFound
	// when the line does not belong to the caller's cart.
	UpdateItem(ctx context.Context, ident Identity, itemID int64, qty int) (*CartView, CookieDirective, error)

	// RemoveItem deletes a line. Fails with ErrCartItemNotFound when the line
	// does not belong to the caller's cart.
	RemoveItem(ctx context.Context, ident Identity, itemID int64) (*CartView, CookieDirective, error)
}
