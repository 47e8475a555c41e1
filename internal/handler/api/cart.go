package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Observer7203/Online-Store-Test/internal/cookie"
	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// CartHandler handles the cart routes. Every route resolves the caller's cart
// from the bearer token and guest cookie, so a login mid-session transparently
// merges the guest cart.
type CartHandler struct {
	carts  domain.CartService
	logger *slog.Logger
}

func NewCartHandler(carts domain.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// identity builds the request identity from the authenticated user (if any)
// and the guest_token cookie (if any).
func identity(r *http.Request) domain.Identity {
	var ident domain.Identity
	if user := domain.UserFromContext(r.Context()); user != nil {
		ident.UserID = &user.ID
	}
	ident.GuestToken = cookie.GuestToken(r)
	return ident
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	view, directive, err := h.carts.Resolve(r.Context(), identity(r))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	cookie.Apply(w, directive)
	respondData(w, http.StatusOK, cartView(view))
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Qty       int   `json:"qty" validate:"required,gte=1"`
}

// AddItem handles POST /api/cart. Responds 201 when a new line was
// created, 200 when an existing line's quantity was incremented.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	view, created, directive, err := h.carts.AddItem(r.Context(), identity(r), req.ProductID, req.Qty)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	cookie.Apply(w, directive)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondData(w, status, cartView(view))
}

type updateItemRequest struct {
	Qty int `json:"qty" validate:"required,gte=1"`
}

// UpdateItem handles PUT /api/cart/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req updateItemRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	view, directive, err := h.carts.UpdateItem(r.Context(), identity(r), itemID, req.Qty)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	cookie.Apply(w, directive)
	respondData(w, http.StatusOK, cartView(view))
}

// RemoveItem handles DELETE /api/cart/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	view, directive, err := h.carts.RemoveItem(r.Context(), identity(r), itemID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	cookie.Apply(w, directive)
	respondData(w, http.StatusOK, cartView(view))
}

// pathID parses a numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.Invalid("request.path", "Invalid "+name+" parameter")
	}
	return id, nil
}
