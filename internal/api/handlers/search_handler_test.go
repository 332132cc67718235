package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimmesomedew/pawdirectory/internal/application/services"
	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/providers"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

type fakeListingRepo struct {
	listings []*entities.ServiceListing
}

func (f *fakeListingRepo) Create(ctx context.Context, listing *entities.ServiceListing) error {
	f.listings = append(f.listings, listing)
	return nil
}

func (f *fakeListingRepo) GetByID(ctx context.Context, id string) (*entities.ServiceListing, error) {
	for _, l := range f.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, apperrors.NewNotFoundError("listing not found")
}

func (f *fakeListingRepo) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
	var out []*entities.ServiceListing
	for _, l := range f.listings {
		if filter.ServiceType != "" && l.ServiceType != filter.ServiceType {
			continue
		}
		if filter.State != "" && l.State != filter.State {
			continue
		}
		if filter.ZipCode != "" && l.ZipCode != filter.ZipCode {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeListingRepo) SearchWithinRadius(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
	return nil, nil
}

func (f *fakeListingRepo) FindOneWithCoordinatesByZip(ctx context.Context, zipCode string) (*entities.ServiceListing, error) {
	return nil, apperrors.NewNotFoundError("no listing at zip")
}

type fakeProductRepo struct{}

func (f *fakeProductRepo) Create(ctx context.Context, product *entities.Product) error { return nil }
func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	return nil, apperrors.NewNotFoundError("product not found")
}
func (f *fakeProductRepo) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) SearchWithinRadius(ctx context.Context, params repositories.RadiusParams) ([]*entities.Product, error) {
	return nil, nil
}

type fakeCategoryRepo struct{}

func (f *fakeCategoryRepo) ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) ListProductCategories(ctx context.Context) ([]*entities.ProductCategory, error) {
	return nil, nil
}

type fakeGeocoder struct{}

func (f *fakeGeocoder) Geocode(ctx context.Context, addressOrZip string) (*providers.GeocodeResult, error) {
	return &providers.GeocodeResult{Success: false}, nil
}

func newTestSearchHandler(repo *fakeListingRepo) *SearchHandler {
	parser := services.NewQueryParser(services.DefaultKeywordTable(), 25)
	resolver := services.NewLocationResolver(repo, &fakeGeocoder{})
	searchService := services.NewSearchService(
		repo, &fakeProductRepo{}, &fakeCategoryRepo{},
		parser, services.NewCategoryMatcher(), resolver, 100,
	)
	listingService := services.NewListingService(repo, nil)
	return NewSearchHandler(searchService, listingService, nil)
}

func stateListing(name, state string) *entities.ServiceListing {
	return &entities.ServiceListing{
		Name:        name,
		ServiceType: "groomer",
		State:       state,
		Status:      entities.ListingStatusApproved,
	}
}

func TestSearchEndpointReturnsRankedResults(t *testing.T) {
	repo := &fakeListingRepo{listings: []*entities.ServiceListing{
		stateListing("Zelda's Grooming", "IN"),
		stateListing("Apex Pet Spa", "IN"),
		stateListing("Texas Tails", "TX"),
	}}
	handler := newTestSearchHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=groomers+in+Indiana", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success  bool              `json:"success"`
		Results  []json.RawMessage `json:"results"`
		Metadata struct {
			OriginalQuery string `json:"originalQuery"`
			ParsedPattern string `json:"parsedPattern"`
			ResultCount   int    `json:"resultCount"`
			SearchType    string `json:"searchType"`
			Filters       struct {
				ServiceType   string `json:"serviceType"`
				LocationType  string `json:"locationType"`
				LocationValue string `json:"locationValue"`
			} `json:"filters"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Len(t, body.Results, 2)
	assert.Equal(t, "groomers in Indiana", body.Metadata.OriginalQuery)
	assert.Equal(t, "service:groomer location:state:IN", body.Metadata.ParsedPattern)
	assert.Equal(t, 2, body.Metadata.ResultCount)
	assert.Equal(t, "state", body.Metadata.SearchType)
	assert.Equal(t, "groomer", body.Metadata.Filters.ServiceType)
	assert.Equal(t, "IN", body.Metadata.Filters.LocationValue)
}

func TestSearchEndpointEmptyQueryReturns400(t *testing.T) {
	handler := newTestSearchHandler(&fakeListingRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestSearchEndpointNearMeWithoutCoordinatesReturns400(t *testing.T) {
	handler := newTestSearchHandler(&fakeListingRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=groomers+near+me", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointInvalidCoordinatesReturns400(t *testing.T) {
	handler := newTestSearchHandler(&fakeListingRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=groomers&lat=abc&lng=-86.1", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointPostBody(t *testing.T) {
	repo := &fakeListingRepo{listings: []*entities.ServiceListing{
		stateListing("Apex Pet Spa", "IN"),
	}}
	handler := newTestSearchHandler(repo)

	payload := `{"query": "groomers in Indiana", "userLocation": {"lat": 39.9, "lng": -86.1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.SearchPost(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchEndpointPostInvalidBodyReturns400(t *testing.T) {
	handler := newTestSearchHandler(&fakeListingRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.SearchPost(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestEndpointWithoutIndexReturnsEmpty(t *testing.T) {
	handler := newTestSearchHandler(&fakeListingRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/search/suggest?q=wag", nil)
	rec := httptest.NewRecorder()
	handler.Suggest(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Suggestions []json.RawMessage `json:"suggestions"`
		Count       int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Zero(t, body.Count)
}

func TestZeroResultsEndpointDisabledReturns404(t *testing.T) {
	handler := newTestSearchHandler(&fakeListingRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/search/zero-results", nil)
	rec := httptest.NewRecorder()
	handler.ZeroResultQueries(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
