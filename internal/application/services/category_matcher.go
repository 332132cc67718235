package services

import (
	"strings"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// CategoryMatcher decides whether a query warrants searching the product
// collection. Products and services have independent taxonomies, so this is
// evaluated separately from service-category detection.
type CategoryMatcher struct{}

// NewCategoryMatcher creates a category matcher.
func NewCategoryMatcher() *CategoryMatcher {
	return &CategoryMatcher{}
}

// ProductSignal reports whether the query should trigger a product fetch:
// either the query overlaps a product category's name or description, or it
// mentions the word "product(s)" outright. The two signals are OR'd.
func (m *CategoryMatcher) ProductSignal(query string, categories []*entities.ProductCategory) bool {
	normalized := normalizeQuery(query)
	if normalized == "" {
		return false
	}

	if containsWord(normalized, "product") || containsWord(normalized, "products") {
		return true
	}

	for _, category := range categories {
		if overlaps(normalized, strings.ToLower(category.Name)) {
			return true
		}
		if overlaps(normalized, strings.ToLower(category.Description)) {
			return true
		}
	}

	return false
}

// overlaps reports containment in either direction. A query of "supplements"
// matches the category "joint supplements" and vice versa.
func overlaps(query, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return strings.Contains(query, text) || strings.Contains(text, query)
}

func containsWord(normalized, word string) bool {
	for _, token := range strings.Fields(normalized) {
		if token == word {
			return true
		}
	}
	return false
}
