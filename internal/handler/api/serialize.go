package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// JSON view types. All money fields are integer minor units.

type productRefJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// cartItemJSON names the locked-in line price price_minor on the wire, same
// as the catalog price field.
type cartItemJSON struct {
	ID         int64          `json:"id"`
	ProductID  int64          `json:"product_id"`
	Qty        int            `json:"qty"`
	PriceMinor int64          `json:"price_minor"`
	Product    productRefJSON `json:"product"`
}

type cartJSON struct {
	ID         int64          `json:"id"`
	GuestToken *uuid.UUID     `json:"guest_token"`
	TotalMinor int64          `json:"total_minor"`
	Items      []cartItemJSON `json:"items"`
}

func cartView(v *domain.CartView) cartJSON {
	items := make([]cartItemJSON, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, cartItemJSON{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Qty:        it.Qty,
			PriceMinor: it.PriceSnapshot,
			Product: productRefJSON{
				ID:   it.Product.ID,
				Name: it.Product.Name,
				Slug: it.Product.Slug,
			},
		})
	}
	return cartJSON{ID: v.ID, GuestToken: v.GuestToken, TotalMinor: v.TotalMinor, Items: items}
}

type categoryJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type attributeValueJSON struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type productJSON struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	PriceMinor  int64                `json:"price_minor"`
	Category    *categoryJSON        `json:"category"`
	Attributes  []attributeValueJSON `json:"attributes"`
	CreatedAt   time.Time            `json:"created_at"`
}

func productView(d domain.ProductDetail) productJSON {
	out := productJSON{
		ID:          d.Product.ID,
		Name:        d.Product.Name,
		Slug:        d.Product.Slug,
		Description: d.Product.Description,
		PriceMinor:  d.Product.PriceMinor,
		Attributes:  []attributeValueJSON{},
		CreatedAt:   d.Product.CreatedAt,
	}
	if d.Category != nil {
		out.Category = &categoryJSON{ID: d.Category.ID, Name: d.Category.Name, Slug: d.Category.Slug}
	}
	for _, av := range d.Attributes {
		out.Attributes = append(out.Attributes, attributeValueJSON{
			Code:  av.Code,
			Name:  av.Name,
			Value: av.Value.Scalar(),
		})
	}
	return out
}

type categoryNodeJSON struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Children []categoryNodeJSON `json:"children"`
}

func categoryTreeView(nodes []domain.CategoryNode) []categoryNodeJSON {
	out := make([]categoryNodeJSON, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, categoryNodeJSON{
			ID:       n.ID,
			Name:     n.Name,
			Slug:     n.Slug,
			Children: categoryTreeView(n.Children),
		})
	}
	return out
}

type attributeJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Type string `json:"type"`
}

func attributeView(a domain.Attribute) attributeJSON {
	return attributeJSON{ID: a.ID, Name: a.Name, Code: a.Code, Type: string(a.Type)}
}

type orderItemJSON struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	NameSnapshot  string `json:"name_snapshot"`
	PriceSnapshot int64  `json:"price_snapshot"`
	Qty           int    `json:"qty"`
}

type orderJSON struct {
	ID             int64           `json:"id"`
	UserID         *int64          `json:"user_id"`
	GuestToken     *uuid.UUID      `json:"guest_token"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Status         string          `json:"status"`
	TotalMinor     int64           `json:"total_minor"`
	IdempotencyKey *string         `json:"idempotency_key"`
	Items          []orderItemJSON `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
}

func orderView(d domain.OrderDetail) orderJSON {
	items := make([]orderItemJSON, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, orderItemJSON{
			ID:            it.ID,
			ProductID:     it.ProductID,
			NameSnapshot:  it.NameSnapshot,
			PriceSnapshot: it.PriceSnapshot,
			Qty:           it.Qty,
		})
	}
	return orderJSON{
		ID:             d.Order.ID,
		UserID:         d.Order.UserID,
		GuestToken:     d.Order.GuestToken,
		Email:          d.Order.Email,
		Phone:          d.Order.Phone,
		Status:         d.Order.Status,
		TotalMinor:     d.Order.TotalMinor,
		IdempotencyKey: d.Order.IdempotencyKey,
		Items:          items,
		CreatedAt:      d.Order.CreatedAt,
	}
}

type userJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func userView(u *domain.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email}
}
