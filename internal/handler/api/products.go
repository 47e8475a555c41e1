package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// ProductHandler handles catalog routes
type ProductHandler struct {
	products domain.ProductService
	logger   *slog.Logger
}

func NewProductHandler(products domain.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// List handles GET /api/products.
//
// Query parameters: category_ids[] (repeatable or comma-separated; category_id
// is an alias), price_min, price_max, sort (price_asc|price_desc|latest),
// page, and attr[code]=value or attr[code][]=value for EAV filters. An unknown
// attribute code or unparsable value is a 400, never a silently empty result.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := h.parseFilter(r, query)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	page, err := h.products.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	items := make([]productJSON, 0, len(page.Items))
	for _, d := range page.Items {
		items = append(items, productView(d))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  items,
		"links": paginationLinks(r.URL, page),
		"meta": map[string]any{
			"current_page": page.CurrentPage,
			"last_page":    page.LastPage,
			"per_page":     page.PerPage,
			"total":        page.Total,
		},
	})
}

// Show handles GET /api/products/{slug}
func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	detail, err := h.products.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, productView(*detail))
}

type createProductRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"required,max=255"`
	Description string `json:"description"`
	CategoryID  *int64 `json:"category_id"`
	PriceMinor  int64  `json:"price_minor" validate:"gte=0"`
}

// Create handles POST /api/products. Requires authentication.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	product, err := h.products.Create(r.Context(), domain.CreateProductParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriceMinor:  req.PriceMinor,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondData(w, http.StatusCreated, productView(domain.ProductDetail{Product: *product}))
}

// Delete handles DELETE /api/products/{id}. Requires authentication.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) parseFilter(r *http.Request, query url.Values) (domain.ProductFilter, error) {
	const op = "product.list"

	var filter domain.ProductFilter

	// category_ids[] is the canonical parameter; category_id is accepted as
	// an alias.
	raws := append(append([]string{}, query["category_ids[]"]...), query["category_ids"]...)
	raws = append(raws, query["category_id"]...)
	for _, raw := range raws {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return filter, domain.Invalid(op, "Invalid category_ids parameter")
			}
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}

	if raw := query.Get("price_min"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, domain.Invalid(op, "Invalid price_min parameter")
		}
		filter.PriceMin = &v
	}
	if raw := query.Get("price_max"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, domain.Invalid(op, "Invalid price_max parameter")
		}
		filter.PriceMax = &v
	}

	switch sort := query.Get("sort"); sort {
	case "", string(domain.SortLatest):
		filter.Sort = domain.SortLatest
	case string(domain.SortPriceAsc):
		filter.Sort = domain.SortPriceAsc
	case string(domain.SortPriceDesc):
		filter.Sort = domain.SortPriceDesc
	default:
		return filter, domain.Invalid(op, "Invalid sort parameter")
	}

	filter.Page = 1
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, domain.Invalid(op, "Invalid page parameter")
		}
		filter.Page = page
	}

	attrs, err := h.products.ResolveAttrFilters(r.Context(), attrParams(query))
	if err != nil {
		return filter, err
	}
	filter.Attrs = attrs

	return filter, nil
}

// attrParams collects attr[code]=value query parameters. The array form
// attr[code][]=value carries the same code.
func attrParams(query url.Values) map[string][]string {
	out := make(map[string][]string)
	for key, values := range query {
		if !strings.HasPrefix(key, "attr[") {
			continue
		}
		rest := strings.TrimSuffix(key[len("attr["):], "[]")
		if !strings.HasSuffix(rest, "]") {
			continue
		}
		code := rest[:len(rest)-1]
		if code == "" || strings.ContainsAny(code, "[]") {
			continue
		}
		out[code] = append(out[code], values...)
	}
	return out
}

// paginationLinks builds first/last/prev/next URLs preserving the filters.
func paginationLinks(u *url.URL, page *domain.ProductPage) map[string]*string {
	link := func(p int) *string {
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		s := fmt.Sprintf("%s?%s", u.Path, q.Encode())
		return &s
	}

	links := map[string]*string{
		"first": link(1),
		"last":  link(page.LastPage),
		"prev":  nil,
		"next":  nil,
	}
	if page.CurrentPage > 1 {
		links["prev"] = link(page.CurrentPage - 1)
	}
	if page.CurrentPage < page.LastPage {
		links["next"] = link(page.CurrentPage + 1)
	}
	return links
}
