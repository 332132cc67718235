package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/postgres"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

// CategoryAdapter implements CategoryRepository on PostgreSQL.
type CategoryAdapter struct {
	client *postgres.Client
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{client: client}
}

// ListServiceCategories returns the service taxonomy ordered by display name.
func (a *CategoryAdapter) ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error) {
	query := `
		SELECT id, display_name, keywords
		FROM service_categories
		ORDER BY display_name
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list service categories", err)
	}
	defer rows.Close()

	categories := []*entities.ServiceCategory{}
	for rows.Next() {
		category := &entities.ServiceCategory{}
		if err := rows.Scan(&category.ID, &category.DisplayName, pq.Array(&category.Keywords)); err != nil {
			return nil, apperrors.NewInternalError("failed to scan service category", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating service categories", err)
	}

	return categories, nil
}

// ListProductCategories returns the product taxonomy ordered by name.
func (a *CategoryAdapter) ListProductCategories(ctx context.Context) ([]*entities.ProductCategory, error) {
	query := `
		SELECT id, name, description
		FROM product_categories
		ORDER BY name
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list product categories", err)
	}
	defer rows.Close()

	categories := []*entities.ProductCategory{}
	for rows.Next() {
		category := &entities.ProductCategory{}
		var description sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &description); err != nil {
			return nil, apperrors.NewInternalError("failed to scan product category", err)
		}
		category.Description = description.String
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating product categories", err)
	}

	return categories, nil
}
