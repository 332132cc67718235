package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/postgres"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

// distanceExpr computes great-circle distance in miles between the bound
// origin ($1 lat, $2 lng) and a row's coordinates. least() guards acos
// against floating point drift past 1.0.
const distanceExpr = `(3959 * acos(least(1.0,
	cos(radians($1)) * cos(radians(latitude)) *
	cos(radians(longitude) - radians($2)) +
	sin(radians($1)) * sin(radians(latitude)))))`

const listingColumns = `id, name, description, service_type, address, city, state, zip_code,
	latitude, longitude, phone, website, status, created_at, updated_at`

// ListingAdapter implements ListingRepository on PostgreSQL.
type ListingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewListingAdapter creates a new listing adapter
func NewListingAdapter(client *postgres.Client) repositories.ListingRepository {
	return &ListingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new listing
func (a *ListingAdapter) Create(ctx context.Context, listing *entities.ServiceListing) error {
	record := goqu.Record{
		"id":           listing.ID,
		"name":         listing.Name,
		"description":  sql.NullString{String: listing.Description, Valid: listing.Description != ""},
		"service_type": listing.ServiceType,
		"address":      sql.NullString{String: listing.Address, Valid: listing.Address != ""},
		"city":         sql.NullString{String: listing.City, Valid: listing.City != ""},
		"state":        listing.State,
		"zip_code":     listing.ZipCode,
		"phone":        sql.NullString{String: listing.Phone, Valid: listing.Phone != ""},
		"website":      sql.NullString{String: listing.Website, Valid: listing.Website != ""},
		"status":       string(listing.Status),
		"created_at":   listing.CreatedAt,
		"updated_at":   listing.UpdatedAt,
	}
	if listing.Location != nil {
		record["latitude"] = listing.Location.Latitude
		record["longitude"] = listing.Location.Longitude
	}

	query, args, err := a.db.Insert("listings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create listing", err)
	}

	return nil
}

// GetByID retrieves a listing by ID
func (a *ListingAdapter) GetByID(ctx context.Context, id string) (*entities.ServiceListing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	listing, err := scanListing(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("listing with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get listing", err)
	}

	return listing, nil
}

// List retrieves listings matching exact-field filters
func (a *ListingAdapter) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
	ex := goqu.Ex{}
	if filter.ServiceType != "" {
		ex["service_type"] = filter.ServiceType
	}
	if filter.State != "" {
		ex["state"] = filter.State
	}
	if filter.ZipCode != "" {
		ex["zip_code"] = filter.ZipCode
	}
	if filter.Status != "" {
		ex["status"] = string(filter.Status)
	}

	ds := a.db.Select(goqu.L(listingColumns)).From("listings").Where(ex).Order(goqu.I("name").Asc())
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
		return nil, apperrors.NewInternalError("failed to list listings", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

// SearchWithinRadius retrieves approved listings within radiusMiles of the origin.
func (a *ListingAdapter) SearchWithinRadius(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
	query := fmt.Sprintf(`
		SELECT %s, distance FROM (
			SELECT %s, %s AS distance
			FROM listings
			WHERE status = 'approved'
			  AND latitude IS NOT NULL AND longitude IS NOT NULL
		) AS nearby
		WHERE distance <= $3
	`, listingColumns, listingColumns, distanceExpr)

	args := []interface{}{params.Latitude, params.Longitude, params.RadiusMiles}
	argCount := 4

	if params.ServiceType != "" {
		query += fmt.Sprintf(" AND service_type = $%d", argCount)
		args = append(args, params.ServiceType)
		argCount++
	}
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
		return nil, apperrors.NewInternalError("failed to search listings by radius", err)
	}
	defer rows.Close()

	listings := []*entities.ServiceListing{}
	for rows.Next() {
		listing := &entities.ServiceListing{}
		var description, address, city, phone, website sql.NullString
		var lat, lng sql.NullFloat64
		var distance float64

		err := rows.Scan(
			&listing.ID,
			&listing.Name,
			&description,
			&listing.ServiceType,
			&address,
			&city,
			&listing.State,
			&listing.ZipCode,
			&lat,
			&lng,
			&phone,
			&website,
			&listing.Status,
			&listing.CreatedAt,
			&listing.UpdatedAt,
			&distance,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan listing", err)
		}
		applyListingNullables(listing, description, address, city, phone, website, lat, lng)
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating listings", err)
	}

	return listings, nil
}

// FindOneWithCoordinatesByZip returns any approved listing with the exact
// postal code and known coordinates.
func (a *ListingAdapter) FindOneWithCoordinatesByZip(ctx context.Context, zipCode string) (*entities.ServiceListing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM listings
		WHERE zip_code = $1 AND status = 'approved'
		  AND latitude IS NOT NULL AND longitude IS NOT NULL
		LIMIT 1
	`, listingColumns)

	listing, err := scanListing(a.client.DB().QueryRowContext(ctx, query, zipCode))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no listing with coordinates at zip %s", zipCode))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up listing by zip", err)
	}

	return listing, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*entities.ServiceListing, error) {
	listing := &entities.ServiceListing{}
	var description, address, city, phone, website sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&listing.ID,
		&listing.Name,
		&description,
		&listing.ServiceType,
		&address,
		&city,
		&listing.State,
		&listing.ZipCode,
		&lat,
		&lng,
		&phone,
		&website,
		&listing.Status,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyListingNullables(listing, description, address, city, phone, website, lat, lng)
	return listing, nil
}

func collectListings(rows *sql.Rows) ([]*entities.ServiceListing, error) {
	listings := []*entities.ServiceListing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan listing", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating listings", err)
	}
	return listings, nil
}

func applyListingNullables(listing *entities.ServiceListing, description, address, city, phone, website sql.NullString, lat, lng sql.NullFloat64) {
	listing.Description = description.String
	listing.Address = address.String
	listing.City = city.String
	listing.Phone = phone.String
	listing.Website = website.String
	if lat.Valid && lng.Valid {
		listing.Location = &entities.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
	}
}
