package repository

import (
	"context"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

func (q *Queries) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, parent_id, name, slug, depth
		FROM categories
		ORDER BY depth, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Depth); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := q.db.QueryRow(ctx, `
		SELECT id, parent_id, name, slug, depth
		FROM categories
		WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Depth)
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}
