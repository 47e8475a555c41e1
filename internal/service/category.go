package service

import (
	"context"
	"log/slog"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
)

// CategoryService serves the category tree.
type CategoryService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.CategoryService = (*CategoryService)(nil)

func NewCategoryService(repo repository.Querier, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// Tree returns root categories with children nested. Categories arrive
// ordered by depth, so every parent node exists before its children are
// attached.
func (s *CategoryService) Tree(ctx context.Context) ([]domain.CategoryNode, error) {
	const op = "category.tree"

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list categories")
	}

	children := make(map[int64][]domain.Category)
	var roots []domain.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(c domain.Category) domain.CategoryNode
	build = func(c domain.Category) domain.CategoryNode {
		node := domain.CategoryNode{Category: c, Children: []domain.CategoryNode{}}
		for _, child := range children[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]domain.CategoryNode, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r))
	}
	return tree, nil
}
