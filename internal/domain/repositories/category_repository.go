package repositories

import (
	"context"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// CategoryRepository supplies the two taxonomies the parser matches against.
// Both lists are read-only during a search.
type CategoryRepository interface {
	// ListServiceCategories returns the service taxonomy
	ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error)

	// ListProductCategories returns the product taxonomy
	ListProductCategories(ctx context.Context) ([]*entities.ProductCategory, error)
}
