package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

// ProductService manages the product catalog.
type ProductService struct {
	products repositories.ProductRepository
}

// NewProductService creates a product service.
func NewProductService(products repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create validates and stores a product.
func (s *ProductService) Create(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	if product == nil {
		return nil, apperrors.NewValidationError("product is required")
	}
	if strings.TrimSpace(product.Name) == "" {
		return nil, apperrors.NewValidationError("product name is required")
	}

	now := time.Now().UTC()
	product.ID = uuid.New().String()
	product.IsActive = true
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID returns a product by its identifier.
func (s *ProductService) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("product id is required")
	}
	return s.products.GetByID(ctx, id)
}

// List returns products matching the filter.
func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.products.List(ctx, filter)
}
