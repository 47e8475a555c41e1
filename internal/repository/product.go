package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

const productColumns = "id, category_id, name, slug, description, price_minor, created_at"

func (q *Queries) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1`,
		id,
	)
	return scanProduct(row)
}

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE slug = $1`,
		slug,
	)
	return scanProduct(row)
}

type CreateProductParams struct {
	CategoryID  *int64
	Name        string
	Slug        string
	Description string
	PriceMinor  int64
}

func (q *Queries) CreateProduct(ctx context.Context, params CreateProductParams) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO products (category_id, name, slug, description, price_minor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		params.CategoryID, params.Name, params.Slug, params.Description, params.PriceMinor,
	)
	return scanProduct(row)
}

// DeleteProduct removes a product. Returns ErrNoRows when absent.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	var deleted int64
	return q.db.QueryRow(ctx, `DELETE FROM products WHERE id = $1 RETURNING id`, id).Scan(&deleted)
}

// buildProductFilter renders the WHERE fragment shared by the count and list
// statements. EAV filters become one EXISTS subquery per attribute, comparing
// against the column picked by the attribute's declared type.
func buildProductFilter(filter domain.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.CategoryIDs) > 0 {
		conds = append(conds, fmt.Sprintf("p.category_id = ANY(%s)", arg(filter.CategoryIDs)))
	}
	if filter.PriceMin != nil {
		conds = append(conds, fmt.Sprintf("p.price_minor >= %s", arg(*filter.PriceMin)))
	}
	if filter.PriceMax != nil {
		conds = append(conds, fmt.Sprintf("p.price_minor <= %s", arg(*filter.PriceMax)))
	}

	for _, af := range filter.Attrs {
		column := attrValueColumn(af.Attribute.Type)

		placeholders := make([]string, 0, len(af.Values))
		for _, v := range af.Values {
			placeholders = append(placeholders, arg(attrValueArg(v)))
		}

		conds = append(conds, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM product_attributes pa
				WHERE pa.product_id = p.id
				  AND pa.attribute_id = %s
				  AND pa.%s IN (%s)
			)`,
			arg(af.Attribute.ID), column, strings.Join(placeholders, ", "),
		))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// attrValueColumn maps a declared attribute type to its storage column.
func attrValueColumn(t domain.AttributeType) string {
	switch t {
	case domain.AttributeInt:
		return "value_int"
	case domain.AttributeDecimal:
		return "value_decimal"
	case domain.AttributeBool:
		return "value_boolean"
	default:
		return "value_string"
	}
}

func attrValueArg(v domain.AttrValue) any {
	switch v.Type {
	case domain.AttributeInt:
		return v.Int
	case domain.AttributeDecimal:
		return v.Dec
	case domain.AttributeBool:
		return v.Bool
	default:
		return v.Str
	}
}

func productOrderBy(sort domain.ProductSort) string {
	switch sort {
	case domain.SortPriceAsc:
		return "ORDER BY p.price_minor ASC, p.id ASC"
	case domain.SortPriceDesc:
		return "ORDER BY p.price_minor DESC, p.id ASC"
	default:
		return "ORDER BY p.created_at DESC, p.id DESC"
	}
}

func (q *Queries) CountProductsFiltered(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	where, args := buildProductFilter(filter)

	var total int64
	err := q.db.QueryRow(ctx,
		"SELECT count(*) FROM products p "+where,
		args...,
	).Scan(&total)
	return total, err
}

type ListProductsFilteredParams struct {
	Filter domain.ProductFilter
	Limit  int
	Offset int
}

func (q *Queries) ListProductsFiltered(ctx context.Context, params ListProductsFilteredParams) ([]domain.Product, error) {
	where, args := buildProductFilter(params.Filter)

	sql := fmt.Sprintf(
		"SELECT p.id, p.category_id, p.name, p.slug, p.description, p.price_minor, p.created_at FROM products p %s %s LIMIT $%d OFFSET $%d",
		where, productOrderBy(params.Filter.Sort), len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, params.Offset)

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ProductAttributeValueRow is one product's value for one attribute, joined
// with the attribute definition. The nullable value columns are scanned as
// pointers; exactly one is non-nil per row.
type ProductAttributeValueRow struct {
	ProductID   int64
	AttributeID int64
	Code        string
	Name        string
	Type        domain.AttributeType
	ValueString *string
	ValueInt    *int64
	ValueDec    *string
	ValueBool   *bool
}

func (q *Queries) ListProductAttributeValues(ctx context.Context, productIDs []int64) ([]ProductAttributeValueRow, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	rows, err := q.db.Query(ctx, `
		SELECT pa.product_id, a.id, a.code, a.name, a.type,
		       pa.value_string, pa.value_int, pa.value_decimal::text, pa.value_boolean
		FROM product_attributes pa
		JOIN attributes a ON a.id = pa.attribute_id
		WHERE pa.product_id = ANY($1)
		ORDER BY pa.product_id, a.id`,
		productIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductAttributeValueRow
	for rows.Next() {
		var r ProductAttributeValueRow
		err := rows.Scan(
			&r.ProductID, &r.AttributeID, &r.Code, &r.Name, &r.Type,
			&r.ValueString, &r.ValueInt, &r.ValueDec, &r.ValueBool,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanProduct(row interface{ Scan(dest ...any) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.PriceMinor, &p.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
