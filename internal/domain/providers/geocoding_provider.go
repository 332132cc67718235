package providers

import (
	"context"
)

// GeocodeResult is the outcome of resolving a free-form address or postal
// code to coordinates. Success is false when the upstream service answered
// but found nothing.
type GeocodeResult struct {
	Success   bool
	Latitude  float64
	Longitude float64
}

// GeocodingProvider defines the interface for external geocoding services.
type GeocodingProvider interface {
	// Geocode converts an address or postal code to coordinates.
	Geocode(ctx context.Context, addressOrZip string) (*GeocodeResult, error)
}
