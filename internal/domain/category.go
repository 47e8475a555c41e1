package domain

import "context"

// Category is a node in the catalog's category tree. Depth 1 marks roots.
type Category struct {
	ID       int64
	ParentID *int64
	Name     string
	Slug     string
	Depth    int
}

// CategoryNode is a category with its children nested, as served by the
// tree endpoint.
type CategoryNode struct {
	Category
	Children []CategoryNode
}

// CategoryService serves the category tree.
type CategoryService interface {
	// Tree returns the root categories (depth 1) with children nested
	// recursively.
	Tree(ctx context.Context) ([]CategoryNode, error)
}
