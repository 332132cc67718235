package repositories

import (
	"context"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// ProductRepository defines the storage contract for product listings.
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *entities.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// List retrieves products matching exact-field filters
	List(ctx context.Context, filter ProductFilter) ([]*entities.Product, error)

	// SearchWithinRadius retrieves products whose coordinates fall within
	// radiusMiles of the given origin
	SearchWithinRadius(ctx context.Context, params RadiusParams) ([]*entities.Product, error)
}

// ProductFilter defines exact-field filters for product fetches. Zero-value
// fields are not applied.
type ProductFilter struct {
	Category string
	State    string
	ZipCode  string
	Limit    int
	Offset   int
}
