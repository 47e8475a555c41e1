package api

import (
	"log/slog"
	"net/http"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// CategoryHandler serves the category tree
type CategoryHandler struct {
	categories domain.CategoryService
	logger     *slog.Logger
}

func NewCategoryHandler(categories domain.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// Tree handles GET /api/categories/tree
func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.categories.Tree(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, categoryTreeView(tree))
}
