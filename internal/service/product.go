package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
)

// ProductsPerPage is the fixed catalog page size.
const ProductsPerPage = 10

// ProductService serves the catalog.
type ProductService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.ProductService = (*ProductService)(nil)

func NewProductService(repo repository.Querier, logger *slog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// List returns one page of products matching the filter, each joined with its
// category and attribute values.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	const op = "product.list"

	if filter.Page < 1 {
		filter.Page = 1
	}

	total, err := s.repo.CountProductsFiltered(ctx, filter)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count products")
	}

	lastPage := int(total+ProductsPerPage-1) / ProductsPerPage
	if lastPage < 1 {
		lastPage = 1
	}

	products, err := s.repo.ListProductsFiltered(ctx, repository.ListProductsFilteredParams{
		Filter: filter,
		Limit:  ProductsPerPage,
		Offset: (filter.Page - 1) * ProductsPerPage,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list products")
	}

	details, err := s.assembleDetails(ctx, products)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product details")
	}

	return &domain.ProductPage{
		Items:       details,
		CurrentPage: filter.Page,
		LastPage:    lastPage,
		PerPage:     ProductsPerPage,
		Total:       total,
	}, nil
}

// GetBySlug returns a product with its category and attribute values.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	const op = "product.get"

	product, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	details, err := s.assembleDetails(ctx, []domain.Product{product})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product details")
	}
	return &details[0], nil
}

// ResolveAttrFilters turns raw attr[code]=value query input into typed
// filters. Values may be comma-separated for an OR match within one
// attribute. Unknown codes and unparsable values fail with EINVALID.
func (s *ProductService) ResolveAttrFilters(ctx context.Context, raw map[string][]string) ([]domain.AttrFilter, error) {
	const op = "product.list"

	if len(raw) == 0 {
		return nil, nil
	}

	filters := make([]domain.AttrFilter, 0, len(raw))
	for code, rawValues := range raw {
		attr, err := s.repo.GetAttributeByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrNoRows) {
				return nil, domain.Errorf(domain.EINVALID, op, "unknown attribute: %s", code)
			}
			return nil, domain.Internal(err, op, "failed to load attribute")
		}

		var values []domain.AttrValue
		for _, rv := range rawValues {
			for _, part := range strings.Split(rv, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				v, err := domain.ParseAttrValue(attr.Type, part)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		filters = append(filters, domain.AttrFilter{Attribute: attr, Values: values})
	}
	return filters, nil
}

// Create adds a catalog item. A duplicate slug surfaces as a field-level
// validation error.
func (s *ProductService) Create(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	const op = "product.create"

	if params.CategoryID != nil {
		_, err := s.repo.GetCategoryByID(ctx, *params.CategoryID)
		if errors.Is(err, repository.ErrNoRows) {
			return nil, domain.NewValidationError(op, "category_id", "The selected category_id is invalid.")
		}
		if err != nil {
			return nil, domain.Internal(err, op, "failed to load category")
		}
	}

	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		CategoryID:  params.CategoryID,
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
		PriceMinor:  params.PriceMinor,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.NewValidationError(op, "slug", "The slug has already been taken.")
		}
		return nil, domain.Internal(err, op, "failed to create product")
	}

	s.logger.Info("product created",
		slog.Int64("product_id", product.ID),
		slog.String("slug", product.Slug),
	)
	return &product, nil
}

// Delete removes a catalog item. Cart lines referencing it cascade away. A
// product that was ever ordered cannot be deleted: order_items keeps the
// reference, and the foreign key violation surfaces as a conflict.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	const op = "product.delete"

	err := s.repo.DeleteProduct(ctx, id)
	if errors.Is(err, repository.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	if repository.IsForeignKeyViolation(err) {
		return domain.ErrProductOrdered
	}
	if err != nil {
		return domain.Internal(err, op, "failed to delete product")
	}

	s.logger.Info("product deleted", slog.Int64("product_id", id))
	return nil
}

// assembleDetails joins products with their categories and attribute values
// in two batched queries.
func (s *ProductService) assembleDetails(ctx context.Context, products []domain.Product) ([]domain.ProductDetail, error) {
	if len(products) == 0 {
		return []domain.ProductDetail{}, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	valueRows, err := s.repo.ListProductAttributeValues(ctx, ids)
	if err != nil {
		return nil, err
	}

	valuesByProduct := make(map[int64][]domain.ProductAttributeValue)
	for _, r := range valueRows {
		v, err := attrValueFromRow(r)
		if err != nil {
			return nil, err
		}
		valuesByProduct[r.ProductID] = append(valuesByProduct[r.ProductID], domain.ProductAttributeValue{
			AttributeID: r.AttributeID,
			Code:        r.Code,
			Name:        r.Name,
			Value:       v,
		})
	}

	details := make([]domain.ProductDetail, 0, len(products))
	for _, p := range products {
		d := domain.ProductDetail{
			Product:    p,
			Attributes: valuesByProduct[p.ID],
		}
		if p.CategoryID != nil {
			if c, ok := byID[*p.CategoryID]; ok {
				d.Category = &c
			}
		}
		details = append(details, d)
	}
	return details, nil
}

// attrValueFromRow picks the storage column matching the attribute's declared
// type. A row whose value column is NULL yields the type's zero value.
func attrValueFromRow(r repository.ProductAttributeValueRow) (domain.AttrValue, error) {
	switch r.Type {
	case domain.AttributeInt:
		if r.ValueInt == nil {
			return domain.IntValue(0), nil
		}
		return domain.IntValue(*r.ValueInt), nil
	case domain.AttributeDecimal:
		if r.ValueDec == nil {
			return domain.DecValue(decimal.Zero), nil
		}
		d, err := decimal.NewFromString(*r.ValueDec)
		if err != nil {
			return domain.AttrValue{}, err
		}
		return domain.DecValue(d), nil
	case domain.AttributeBool:
		if r.ValueBool == nil {
			return domain.BoolValue(false), nil
		}
		return domain.BoolValue(*r.ValueBool), nil
	default:
		if r.ValueString == nil {
			return domain.StrValue(""), nil
		}
		return domain.StrValue(*r.ValueString), nil
	}
}
