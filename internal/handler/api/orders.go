package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// OrderHandler handles checkout and order history
type OrderHandler struct {
	orders domain.OrderService
	logger *slog.Logger
}

func NewOrderHandler(orders domain.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

type createOrderRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=32"`
}

// Create handles POST /api/orders.
//
// A repeated Idempotency-Key is not an error from the client's point of view:
// it responds 200 with a duplicate marker and no new order. Guests without a
// cookie may pass their token as the guest_token query parameter.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	detail, err := h.orders.Create(r.Context(), identity(r), domain.CreateOrderParams{
		Email:              req.Email,
		Phone:              req.Phone,
		IdempotencyKey:     r.Header.Get("Idempotency-Key"),
		GuestTokenFallback: r.URL.Query().Get("guest_token"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateOrder):
			respondMessage(w, http.StatusOK, "Duplicate order")
		case errors.Is(err, domain.ErrCartEmpty):
			respondMessage(w, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, domain.ErrOrderFailed):
			respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Order creation failed"})
		default:
			respondError(w, r, h.logger, err)
		}
		return
	}

	respondData(w, http.StatusCreated, orderView(*detail))
}

// List handles GET /api/orders. Requires authentication.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())
	if user == nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	details, err := h.orders.ListForUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	out := make([]orderJSON, 0, len(details))
	for _, d := range details {
		out = append(out, orderView(d))
	}
	respondData(w, http.StatusOK, out)
}
