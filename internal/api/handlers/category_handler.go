package handlers

import (
	"net/http"

	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
)

// CategoryHandler serves the service and product taxonomies.
type CategoryHandler struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryRepo repositories.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

// ListServiceCategories handles GET /api/categories/services
func (h *CategoryHandler) ListServiceCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.ListServiceCategories(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListProductCategories handles GET /api/categories/products
func (h *CategoryHandler) ListProductCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.ListProductCategories(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}
