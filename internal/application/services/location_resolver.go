package services

import (
	"context"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/providers"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/observability"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

// ResolvedOrigin is the concrete location a search runs against. Coordinates
// is nil when no distance concept applies (state searches, or a postal code
// that could not be resolved).
type ResolvedOrigin struct {
	Coordinates *entities.Coordinates
	RadiusMiles float64
	TargetZip   string
}

// LocationResolver turns a ParsedIntent's location fields into concrete
// coordinates and an effective radius.
type LocationResolver struct {
	listings repositories.ListingRepository
	geocoder providers.GeocodingProvider
}

// NewLocationResolver creates a location resolver.
func NewLocationResolver(listings repositories.ListingRepository, geocoder providers.GeocodingProvider) *LocationResolver {
	return &LocationResolver{listings: listings, geocoder: geocoder}
}

// Resolve produces the search origin for an intent. State and None modes
// have no origin. PostalRadius degrades to exact-zip filtering (nil
// coordinates) when neither storage nor geocoding can place the zip; NearMe
// without caller coordinates is a hard validation error.
func (r *LocationResolver) Resolve(ctx context.Context, intent ParsedIntent, userLocation *entities.Coordinates) (*ResolvedOrigin, error) {
	switch intent.LocationMode {
	case LocationPostalRadius:
		origin := &ResolvedOrigin{
			RadiusMiles: intent.RadiusMiles,
			TargetZip:   intent.LocationValue,
		}
		origin.Coordinates = r.resolveZip(ctx, intent.LocationValue)
		return origin, nil

	case LocationNearMe:
		if userLocation == nil {
			return nil, apperrors.NewValidationError("user location is required for a near-me search")
		}
		return &ResolvedOrigin{
			Coordinates: &entities.Coordinates{Latitude: userLocation.Latitude, Longitude: userLocation.Longitude},
			RadiusMiles: intent.RadiusMiles,
		}, nil

	default:
		// State and None filter by exact fields; distance never applies.
		return nil, nil
	}
}

// resolveZip finds coordinates for a postal code: first by reusing any
// stored listing at that zip, then by geocoding. Both failing is not an
// error; the search degrades to exact-zip matching.
func (r *LocationResolver) resolveZip(ctx context.Context, zipCode string) *entities.Coordinates {
	logger := observability.LoggerFromContext(ctx)

	if listing, err := r.listings.FindOneWithCoordinatesByZip(ctx, zipCode); err == nil && listing.Location != nil {
		return listing.Location
	}

	result, err := r.geocoder.Geocode(ctx, zipCode)
	if err != nil {
		logger.Warn().Err(err).Str("zip_code", zipCode).
			Msg("geocoding failed; falling back to exact zip match")
		return nil
	}
	if !result.Success {
		logger.Warn().Str("zip_code", zipCode).
			Msg("geocoder returned no result; falling back to exact zip match")
		return nil
	}

	return &entities.Coordinates{Latitude: result.Latitude, Longitude: result.Longitude}
}
