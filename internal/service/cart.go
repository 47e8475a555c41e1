package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
)

// CartService resolves and mutates the one cart each identity owns.
type CartService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.CartService = (*CartService)(nil)

func NewCartService(repo repository.Querier, logger *slog.Logger) *CartService {
	return &CartService{repo: repo, logger: logger}
}

// Resolve finds or creates the identity's cart and reports how the HTTP layer
// should adjust the guest_token cookie.
func (s *CartService) Resolve(ctx context.Context, ident domain.Identity) (*domain.CartView, domain.CookieDirective, error) {
	const op = "cart.resolve"

	cart, directive, err := s.resolveCart(ctx, ident)
	if err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to resolve cart")
	}

	view, err := s.loadView(ctx, cart)
	if err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to load cart")
	}
	return view, directive, nil
}

// AddItem puts a product into the cart, incrementing quantity when the line
// already exists. The returned bool reports a fresh line (true) versus an
// increment (false); price_snapshot is captured on the first add only.
func (s *CartService) AddItem(ctx context.Context, ident domain.Identity, productID int64, qty int) (*domain.CartView, bool, domain.CookieDirective, error) {
	const op = "cart.add_item"

	if qty < 1 {
		return nil, false, domain.CookieDirective{}, domain.ErrInvalidQuantity
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, false, domain.CookieDirective{}, domain.ErrProductNotFound
		}
		return nil, false, domain.CookieDirective{}, domain.Internal(err, op, "failed to load product")
	}

	cart, directive, err := s.resolveCart(ctx, ident)
	if err != nil {
		return nil, false, domain.CookieDirective{}, domain.Internal(err, op, "failed to resolve cart")
	}

	row, err := s.repo.UpsertCartItem(ctx, repository.UpsertCartItemParams{
		CartID:        cart.ID,
		ProductID:     product.ID,
		Qty:           qty,
		PriceSnapshot: product.PriceMinor,
	})
	if err != nil {
		return nil, false, domain.CookieDirective{}, domain.Internal(err, op, "failed to add item")
	}

	if err := s.repo.TouchCart(ctx, cart.ID); err != nil {
		return nil, false, domain.CookieDirective{}, domain.Internal(err, op, "failed to touch cart")
	}

	view, err := s.loadView(ctx, cart)
	if err != nil {
		return nil, false, domain.CookieDirective{}, domain.Internal(err, op, "failed to load cart")
	}
	return view, row.Inserted, directive, nil
}

// UpdateItem overwrites a line's quantity.
func (s *CartService) UpdateItem(ctx context.Context, ident domain.Identity, itemID int64, qty int) (*domain.CartView, domain.CookieDirective, error) {
	const op = "cart.update_item"

	if qty < 1 {
		return nil, domain.CookieDirective{}, domain.ErrInvalidQuantity
	}

	cart, directive, err := s.resolveCart(ctx, ident)
	if err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to resolve cart")
	}

	err = s.repo.UpdateCartItemQty(ctx, repository.UpdateCartItemQtyParams{
		ID:     itemID,
		CartID: cart.ID,
		Qty:    qty,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, domain.CookieDirective{}, domain.ErrCartItemNotFound
		}
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to update item")
	}

	if err := s.repo.TouchCart(ctx, cart.ID); err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to touch cart")
	}

	view, err := s.loadView(ctx, cart)
	if err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to load cart")
	}
	return view, directive, nil
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, ident domain.Identity, itemID int64) (*domain.CartView, domain.CookieDirective, error) {
	const op = "cart.remove_item"

	cart, directive, err := s.resolveCart(ctx, ident)
	if err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to resolve cart")
	}

	err = s.repo.DeleteCartItem(ctx, repository.DeleteCartItemParams{
		ID:     itemID,
		CartID: cart.ID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, domain.CookieDirective{}, domain.ErrCartItemNotFound
		}
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to remove item")
	}

	if err := s.repo.TouchCart(ctx, cart.ID); err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to touch cart")
	}

	view, err := s.loadView(ctx, cart)
	if err != nil {
		return nil, domain.CookieDirective{}, domain.Internal(err, op, "failed to load cart")
	}
	return view, directive, nil
}

// resolveCart maps an identity to its single cart, creating one when absent.
// For an authenticated user carrying a guest token whose cart has items it
// performs the one-time merge: the guest lines fold into the user cart
// additively and the guest cart is deleted, or when the user has no cart yet
// the guest cart is re-pointed in place. Either way the directive tells the
// HTTP layer to clear the guest cookie.
func (s *CartService) resolveCart(ctx context.Context, ident domain.Identity) (domain.Cart, domain.CookieDirective, error) {
	if ident.UserID != nil {
		return s.resolveUserCart(ctx, *ident.UserID, ident.GuestToken)
	}
	return s.resolveGuestCart(ctx, ident.GuestToken)
}

func (s *CartService) resolveUserCart(ctx context.Context, userID int64, guestToken *uuid.UUID) (domain.Cart, domain.CookieDirective, error) {
	userCart, err := s.repo.GetCartByUserID(ctx, userID)
	haveUserCart := err == nil
	if err != nil && !errors.Is(err, repository.ErrNoRows) {
		return domain.Cart{}, domain.CookieDirective{}, err
	}

	if guestToken != nil {
		guestCart, err := s.repo.GetGuestCart(ctx, *guestToken)

		// The merge is one-shot and clears the client's cookie, so an empty
		// guest cart is left alone: there is nothing to carry over.
		if err == nil {
			guestItems, itemsErr := s.repo.GetCartItems(ctx, guestCart.ID)
			if itemsErr != nil {
				return domain.Cart{}, domain.CookieDirective{}, itemsErr
			}
			if len(guestItems) == 0 {
				err = repository.ErrNoRows
			}
		}

		switch {
		case err == nil && haveUserCart:
			if err := s.mergeCarts(ctx, guestCart, userCart); err != nil {
				return domain.Cart{}, domain.CookieDirective{}, err
			}
			return userCart, domain.CookieDirective{Action: domain.CookieClearGuestToken}, nil

		case err == nil:
			err := s.repo.RepointCartToUser(ctx, repository.RepointCartToUserParams{
				CartID: guestCart.ID,
				UserID: userID,
			})
			if err != nil {
				return domain.Cart{}, domain.CookieDirective{}, err
			}
			guestCart.UserID = &userID
			guestCart.GuestToken = nil
			s.logger.Info("adopted guest cart",
				slog.Int64("cart_id", guestCart.ID),
				slog.Int64("user_id", userID),
			)
			return guestCart, domain.CookieDirective{Action: domain.CookieClearGuestToken}, nil

		case !errors.Is(err, repository.ErrNoRows):
			return domain.Cart{}, domain.CookieDirective{}, err
		}
		// Stale token with no cart behind it; nothing to merge.
	}

	if haveUserCart {
		return userCart, domain.CookieDirective{}, nil
	}

	cart, err := s.repo.CreateUserCart(ctx, userID)
	if errors.Is(err, repository.ErrNoRows) {
		// Lost a concurrent create; the other request's cart wins.
		cart, err = s.repo.GetCartByUserID(ctx, userID)
	}
	if err != nil {
		return domain.Cart{}, domain.CookieDirective{}, err
	}
	return cart, domain.CookieDirective{}, nil
}

func (s *CartService) resolveGuestCart(ctx context.Context, guestToken *uuid.UUID) (domain.Cart, domain.CookieDirective, error) {
	if guestToken != nil {
		cart, err := s.repo.GetGuestCart(ctx, *guestToken)
		if err == nil {
			return cart, domain.CookieDirective{}, nil
		}
		if !errors.Is(err, repository.ErrNoRows) {
			return domain.Cart{}, domain.CookieDirective{}, err
		}

		// Known token without a cart (merged away or expired): recreate under
		// the same token so the client's cookie stays valid.
		cart, err = s.repo.CreateGuestCart(ctx, *guestToken)
		if errors.Is(err, repository.ErrNoRows) {
			cart, err = s.repo.GetGuestCart(ctx, *guestToken)
		}
		if err != nil {
			return domain.Cart{}, domain.CookieDirective{}, err
		}
		return cart, domain.CookieDirective{}, nil
	}

	token := uuid.New()
	cart, err := s.repo.CreateGuestCart(ctx, token)
	if errors.Is(err, repository.ErrNoRows) {
		cart, err = s.repo.GetGuestCart(ctx, token)
	}
	if err != nil {
		return domain.Cart{}, domain.CookieDirective{}, err
	}
	return cart, domain.CookieDirective{Action: domain.CookieSetGuestToken, Token: token}, nil
}

// mergeCarts folds the guest cart into the user cart inside one transaction.
// Quantities add up; when both carts hold the same product the user cart's
// price_snapshot survives, since the upsert never touches it.
func (s *CartService) mergeCarts(ctx context.Context, guest, user domain.Cart) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := tx.Queries()

	items, err := q.GetCartItems(ctx, guest.ID)
	if err != nil {
		return err
	}

	for _, it := range items {
		_, err := q.UpsertCartItem(ctx, repository.UpsertCartItemParams{
			CartID:        user.ID,
			ProductID:     it.ProductID,
			Qty:           it.Qty,
			PriceSnapshot: it.PriceSnapshot,
		})
		if err != nil {
			return err
		}
	}

	if err := q.DeleteCart(ctx, guest.ID); err != nil {
		return err
	}
	if err := q.TouchCart(ctx, user.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.logger.Info("merged guest cart",
		slog.Int64("guest_cart_id", guest.ID),
		slog.Int64("user_cart_id", user.ID),
		slog.Int("items", len(items)),
	)
	return nil
}

// loadView assembles the response shape: joined lines plus the total computed
// as the sum of qty times price_snapshot. The total is never stored.
func (s *CartService) loadView(ctx context.Context, cart domain.Cart) (*domain.CartView, error) {
	items, err := s.repo.GetCartItemsWithProduct(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, it := range items {
		total += int64(it.Qty) * it.PriceSnapshot
	}

	return &domain.CartView{
		ID:         cart.ID,
		UserID:     cart.UserID,
		GuestToken: cart.GuestToken,
		TotalMinor: total,
		Items:      items,
	}, nil
}
