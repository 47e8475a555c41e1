package repository

import (
	"context"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

func (q *Queries) ListAttributes(ctx context.Context) ([]domain.Attribute, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, code, type
		FROM attributes
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []domain.Attribute
	for rows.Next() {
		var a domain.Attribute
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.Type); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

func (q *Queries) GetAttributeByCode(ctx context.Context, code string) (domain.Attribute, error) {
	var a domain.Attribute
	err := q.db.QueryRow(ctx, `
		SELECT id, name, code, type
		FROM attributes
		WHERE code = $1`,
		code,
	).Scan(&a.ID, &a.Name, &a.Code, &a.Type)
	if err != nil {
		return domain.Attribute{}, err
	}
	return a, nil
}

type CreateAttributeParams struct {
	Name string
	Code string
	Type domain.AttributeType
}

func (q *Queries) CreateAttribute(ctx context.Context, params CreateAttributeParams) (domain.Attribute, error) {
	var a domain.Attribute
	err := q.db.QueryRow(ctx, `
		INSERT INTO attributes (name, code, type)
		VALUES ($1, $2, $3)
		RETURNING id, name, code, type`,
		params.Name, params.Code, params.Type,
	).Scan(&a.ID, &a.Name, &a.Code, &a.Type)
	if err != nil {
		return domain.Attribute{}, err
	}
	return a, nil
}

// DeleteAttribute removes an attribute definition and, via cascade, every
// product value for it. Returns ErrNoRows when absent.
func (q *Queries) DeleteAttribute(ctx context.Context, id int64) error {
	var deleted int64
	return q.db.QueryRow(ctx, `DELETE FROM attributes WHERE id = $1 RETURNING id`, id).Scan(&deleted)
}
