package repositories

import (
	"context"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// ListingRepository defines the storage contract for service listings.
type ListingRepository interface {
	// Create creates a new listing
	Create(ctx context.Context, listing *entities.ServiceListing) error

	// GetByID retrieves a listing by ID
	GetByID(ctx context.Context, id string) (*entities.ServiceListing, error)

	// List retrieves listings matching exact-field filters
	List(ctx context.Context, filter ListingFilter) ([]*entities.ServiceListing, error)

	// SearchWithinRadius retrieves listings whose coordinates fall within
	// radiusMiles of the given origin, optionally restricted to one
	// service type
	SearchWithinRadius(ctx context.Context, params RadiusParams) ([]*entities.ServiceListing, error)

	// FindOneWithCoordinatesByZip returns any listing with the exact
	// postal code and known coordinates, used to avoid a geocode call
	FindOneWithCoordinatesByZip(ctx context.Context, zipCode string) (*entities.ServiceListing, error)
}

// ListingFilter defines exact-field filters for listing fetches. Zero-value
// fields are not applied.
type ListingFilter struct {
	ServiceType string
	State       string
	ZipCode     string
	Status      entities.ListingStatus
	Limit       int
	Offset      int
}

// RadiusParams defines a distance-restricted fetch.
type RadiusParams struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	ServiceType string
	ExcludeZip  string
	Limit       int
}
