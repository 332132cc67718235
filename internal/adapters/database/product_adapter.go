package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/postgres"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

const productColumns = `id, name, description, categories, vendor_name, price, state, zip_code,
	latitude, longitude, is_active, created_at, updated_at`

// ProductAdapter implements ProductRepository on PostgreSQL.
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new product
func (a *ProductAdapter) Create(ctx context.Context, product *entities.Product) error {
	record := goqu.Record{
		"id":          product.ID,
		"name":        product.Name,
		"description": sql.NullString{String: product.Description, Valid: product.Description != ""},
		"categories":  pq.Array(product.Categories),
		"vendor_name": sql.NullString{String: product.VendorName, Valid: product.VendorName != ""},
		"price":       product.Price,
		"state":       sql.NullString{String: product.State, Valid: product.State != ""},
		"zip_code":    sql.NullString{String: product.ZipCode, Valid: product.ZipCode != ""},
		"is_active":   product.IsActive,
		"created_at":  product.CreatedAt,
		"updated_at":  product.UpdatedAt,
	}
	if product.Location != nil {
		record["latitude"] = product.Location.Latitude
		record["longitude"] = product.Location.Longitude
	}

	query, args, err := a.db.Insert("products").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create product", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (a *ProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}

	return product, nil
}

// List retrieves products matching exact-field filters
func (a *ProductAdapter) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	ex := goqu.Ex{"is_active": true}
	if filter.State != "" {
		ex["state"] = filter.State
	}
	if filter.ZipCode != "" {
		ex["zip_code"] = filter.ZipCode
	}

	ds := a.db.Select(goqu.L(productColumns)).From("products").Where(ex)
	if filter.Category != "" {
		// categories is a text[]; match any element
		ds = ds.Where(goqu.L("? = ANY(categories)", filter.Category))
	}
	ds = ds.Order(goqu.I("name").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list products", err)
	}
	defer rows.Close()

	products := []*entities.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating products", err)
	}

	return products, nil
}

// SearchWithinRadius retrieves active products within radiusMiles of the origin.
func (a *ProductAdapter) SearchWithinRadius(ctx context.Context, params repositories.RadiusParams) ([]*entities.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, distance FROM (
			SELECT %s, %s AS distance
			FROM products
			WHERE is_active = true
			  AND latitude IS NOT NULL AND longitude IS NOT NULL
		) AS nearby
		WHERE distance <= $3
	`, productColumns, productColumns, distanceExpr)

	args := []interface{}{params.Latitude, params.Longitude, params.RadiusMiles}
	argCount := 4

	if params.ExcludeZip != "" {
		query += fmt.Sprintf(" AND zip_code <> $%d", argCount)
		args = append(args, params.ExcludeZip)
		argCount++
	}

	query += " ORDER BY distance"

	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, params.Limit)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search products by radius", err)
	}
	defer rows.Close()

	products := []*entities.Product{}
	for rows.Next() {
		product := &entities.Product{}
		var description, vendorName, state, zipCode sql.NullString
		var lat, lng sql.NullFloat64
		var distance float64

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&description,
			pq.Array(&product.Categories),
			&vendorName,
			&product.Price,
			&state,
			&zipCode,
			&lat,
			&lng,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
			&distance,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		applyProductNullables(product, description, vendorName, state, zipCode, lat, lng)
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating products", err)
	}

	return products, nil
}

func scanProduct(row rowScanner) (*entities.Product, error) {
	product := &entities.Product{}
	var description, vendorName, state, zipCode sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		pq.Array(&product.Categories),
		&vendorName,
		&product.Price,
		&state,
		&zipCode,
		&lat,
		&lng,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyProductNullables(product, description, vendorName, state, zipCode, lat, lng)
	return product, nil
}

func applyProductNullables(product *entities.Product, description, vendorName, state, zipCode sql.NullString, lat, lng sql.NullFloat64) {
	product.Description = description.String
	product.VendorName = vendorName.String
	product.State = state.String
	product.ZipCode = zipCode.String
	if lat.Valid && lng.Valid {
		product.Location = &entities.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
	}
}
