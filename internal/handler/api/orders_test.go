package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

func TestOrderHandler_Create(t *testing.T) {
	key := "key-1"
	token := uuid.New()
	orders := &mockOrderService{
		createFunc: func(ctx context.Context, ident domain.Identity, params domain.CreateOrderParams) (*domain.OrderDetail, error) {
			return &domain.OrderDetail{
				Order: domain.Order{
					ID: 7, GuestToken: &token, Email: params.Email, Phone: params.Phone,
					Status: domain.OrderStatusPlaced, TotalMinor: 3000,
					IdempotencyKey: &key, CreatedAt: time.Now(),
				},
				Items: []domain.OrderItem{{ID: 1, OrderID: 7, ProductID: 5, NameSnapshot: "Widget", PriceSnapshot: 1500, Qty: 2}},
			}, nil
		},
	}
	h := NewOrderHandler(orders, testLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"email": "a@b.c", "phone": "+15550001"}`))
	w := httptest.NewRecorder()
	h.Create(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	if data["status"] != "placed" || data["total_minor"] != float64(3000) {
		t.Errorf("data = %v", data)
	}
	if data["user_id"] != nil {
		t.Errorf("user_id = %v, want null for a guest order", data["user_id"])
	}
	if data["guest_token"] != token.String() {
		t.Errorf("guest_token = %v, want %s", data["guest_token"], token)
	}
	if data["idempotency_key"] != key {
		t.Errorf("idempotency_key = %v, want %s", data["idempotency_key"], key)
	}
	items := data["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v, want 1", items)
	}
	line := items[0].(map[string]any)
	if line["id"] != float64(1) || line["name_snapshot"] != "Widget" || line["price_snapshot"] != float64(1500) {
		t.Errorf("item = %v", line)
	}
}

func TestOrderHandler_Create_PassesHeaderAndQueryToken(t *testing.T) {
	var got domain.CreateOrderParams
	orders := &mockOrderService{
		createFunc: func(ctx context.Context, ident domain.Identity, params domain.CreateOrderParams) (*domain.OrderDetail, error) {
			got = params
			return &domain.OrderDetail{}, nil
		},
	}
	h := NewOrderHandler(orders, testLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/orders?guest_token=abc-123", strings.NewReader(`{"email": "a@b.c", "phone": "1"}`))
	r.Header.Set("Idempotency-Key", "key-1")
	h.Create(httptest.NewRecorder(), r)

	if got.IdempotencyKey != "key-1" {
		t.Errorf("IdempotencyKey = %q, want key-1", got.IdempotencyKey)
	}
	if got.GuestTokenFallback != "abc-123" {
		t.Errorf("GuestTokenFallback = %q, want abc-123", got.GuestTokenFallback)
	}
}

func TestOrderHandler_Create_ErrorShapes(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{"duplicate order", domain.ErrDuplicateOrder, http.StatusOK, "message", "Duplicate order"},
		{"empty cart", domain.ErrCartEmpty, http.StatusBadRequest, "message", "Cart is empty"},
		{"materialization failed", domain.ErrOrderFailed, http.StatusInternalServerError, "error", "Order creation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderService{
				createFunc: func(ctx context.Context, ident domain.Identity, params domain.CreateOrderParams) (*domain.OrderDetail, error) {
					return nil, tt.serviceErr
				},
			}
			h := NewOrderHandler(orders, testLogger())

			r := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"email": "a@b.c", "phone": "1"}`))
			w := httptest.NewRecorder()
			h.Create(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeBody(t, w)
			if body[tt.wantKey] != tt.wantValue {
				t.Errorf("body = %v, want %s=%q", body, tt.wantKey, tt.wantValue)
			}
		})
	}
}

func TestOrderHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"phone": "1"}`},
		{"bad email", `{"email": "not-an-email", "phone": "1"}`},
		{"missing phone", `{"email": "a@b.c"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrderHandler(&mockOrderService{}, testLogger())

			r := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Create(w, r)

			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422 (body: %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	orders := &mockOrderService{
		listForUserFunc: func(ctx context.Context, userID int64) ([]domain.OrderDetail, error) {
			return []domain.OrderDetail{
				{Order: domain.Order{ID: 1, UserID: &userID, Status: "placed", TotalMinor: 100, CreatedAt: time.Now()}},
			}, nil
		},
	}
	h := NewOrderHandler(orders, testLogger())

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r = r.WithContext(domain.NewContextWithUser(r.Context(), &domain.User{ID: 42}))
	w := httptest.NewRecorder()
	h.List(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if data := body["data"].([]any); len(data) != 1 {
		t.Errorf("data = %v, want 1 order", data)
	}
}

func TestOrderHandler_List_Unauthenticated(t *testing.T) {
	h := NewOrderHandler(&mockOrderService{}, testLogger())

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	h.List(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
