package geocoding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gimmesomedew/pawdirectory/internal/domain/providers"
)

const (
	googleGeocodeURL       = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// GoogleGeocodingProvider implements GeocodingProvider using the Google
// Geocoding API. Results are cached for 30 days since postal-code centroids
// rarely move.
type GoogleGeocodingProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleGeocodingProvider creates a new Google geocoding provider.
func NewGoogleGeocodingProvider(apiKey string, cache providers.CacheProvider) providers.GeocodingProvider {
	return NewGoogleGeocodingProviderWithOptions(apiKey, cache, googleGeocodeURL, nil)
}

// NewGoogleGeocodingProviderWithOptions allows overriding base URL and HTTP
// client (used for tests).
func NewGoogleGeocodingProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeocodingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleGeocodingProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode converts an address or postal code to coordinates.
func (g *GoogleGeocodingProvider) Geocode(ctx context.Context, addressOrZip string) (*providers.GeocodeResult, error) {
	trimmed := strings.TrimSpace(addressOrZip)
	if trimmed == "" {
		return nil, fmt.Errorf("address is required")
	}

	cacheKey := "geo:v1:geocode:" + hashKey(strings.ToLower(trimmed))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var result providers.GeocodeResult
			if err := json.Unmarshal(cached, &result); err == nil && result.Success {
				return &result, nil
			}
		}
	}

	params := url.Values{
		"address": []string{trimmed},
		"key":     []string{g.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		// Answered but found nothing; not an error per the contract.
		return &providers.GeocodeResult{Success: false}, nil
	}

	result := &providers.GeocodeResult{
		Success:   true,
		Latitude:  body.Results[0].Geometry.Location.Lat,
		Longitude: body.Results[0].Geometry.Location.Lng,
	}

	if g.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			_ = g.cache.Set(ctx, cacheKey, payload, defaultGeocodeCacheTTL)
		}
	}

	return result, nil
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
