package domain

import (
	"context"
	"time"
)

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

	// ErrProductOrdered rejects deleting a product that order item snapshots
	// still reference.
	ErrProductOrdered = &Error{Code: ECONFLICT, Message: "Product has been ordered and cannot be deleted"}
)

// Product is a catalog item. PriceMinor is the current price in minor units;
// carts and orders snapshot it rather than referencing it.
type Product struct {
	ID          int64
	CategoryID  *int64
	Name        string
	Slug        string
	Description string
	PriceMinor  int64
	CreatedAt   time.Time
}

// ProductDetail is a product joined with its category and attribute values.
type ProductDetail struct {
	Product    Product
	Category   *Category
	Attributes []ProductAttributeValue
}

// ProductSort orders for catalog listings.
type ProductSort string

const (
	SortLatest    ProductSort = "latest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
)

// AttrFilter matches products carrying one of Values for the attribute; the
// attribute's declared type already picked the comparison column via the
// typed values.
type AttrFilter struct {
	Attribute Attribute
	Values    []AttrValue
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	CategoryIDs []int64
	PriceMin    *int64
	PriceMax    *int64
	Attrs       []AttrFilter
	Sort        ProductSort
	Page        int
}

// ProductPage is one page of catalog results with pagination bookkeeping.
type ProductPage struct {
	Items       []ProductDetail
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int64
}

// CreateProductParams are the inputs for adding a catalog item.
type CreateProductParams struct {
	Name        string
	Slug        string
	Description string
	CategoryID  *int64
	PriceMinor  int64
}

// ProductService serves the catalog: filtered listings, detail by slug, and
// the authenticated create/delete operations.
type ProductService interface {
	// List returns one page of products matching the filter. Attribute codes
	// are resolved and type-checked before this is called; see
	// ResolveAttrFilters.
	List(ctx context.Context, filter ProductFilter) (*ProductPage, error)

	// GetBySlug returns a product with category and attributes.
	GetBySlug(ctx context.Context, slug string) (*ProductDetail, error)

	// ResolveAttrFilters turns raw attr[code]=value query input into typed
	// filters, failing with EINVALID on unknown codes or unparsable values.
	ResolveAttrFilters(ctx context.Context, raw map[string][]string) ([]AttrFilter, error)

	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Delete(ctx context.Context, id int64) error
}
