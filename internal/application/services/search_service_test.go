package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/providers"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

type stubProductRepo struct {
	createFn func(ctx context.Context, product *entities.Product) error
	getFn    func(ctx context.Context, id string) (*entities.Product, error)
	listFn   func(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error)
	radiusFn func(ctx context.Context, params repositories.RadiusParams) ([]*entities.Product, error)
}

func (s *stubProductRepo) Create(ctx context.Context, product *entities.Product) error {
	if s.createFn != nil {
		return s.createFn(ctx, product)
	}
	return nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("product not found")
}

func (s *stubProductRepo) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *stubProductRepo) SearchWithinRadius(ctx context.Context, params repositories.RadiusParams) ([]*entities.Product, error) {
	if s.radiusFn != nil {
		return s.radiusFn(ctx, params)
	}
	return nil, nil
}

type stubCategoryRepo struct {
	serviceCats []*entities.ServiceCategory
	productCats []*entities.ProductCategory
	serviceErr  error
	productErr  error
}

func (s *stubCategoryRepo) ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error) {
	return s.serviceCats, s.serviceErr
}

func (s *stubCategoryRepo) ListProductCategories(ctx context.Context) ([]*entities.ProductCategory, error) {
	return s.productCats, s.productErr
}

func newSearchServiceForTest(listings *stubListingRepo, products *stubProductRepo, cats *stubCategoryRepo, geocoder providers.GeocodingProvider, maxResults int) *SearchService {
	if geocoder == nil {
		geocoder = &stubGeocoder{}
	}
	parser := NewQueryParser(DefaultKeywordTable(), 25)
	resolver := NewLocationResolver(listings, geocoder)
	return NewSearchService(listings, products, cats, parser, NewCategoryMatcher(), resolver, maxResults)
}

func approvedListing(name, zip string, lat, lng float64) *entities.ServiceListing {
	return &entities.ServiceListing{
		Name:        name,
		ServiceType: "groomer",
		ZipCode:     zip,
		Location:    &entities.Coordinates{Latitude: lat, Longitude: lng},
		Status:      entities.ListingStatusApproved,
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := newSearchServiceForTest(&stubListingRepo{}, &stubProductRepo{}, &stubCategoryRepo{}, nil, 100)

	_, err := svc.Search(context.Background(), SearchRequest{Query: "   "})

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestSearchNoCriteriaReturnsEmptySet(t *testing.T) {
	listings := &stubListingRepo{
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			t.Fatal("no fetch should run without a category or product signal")
			return nil, nil
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, nil, 100)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "purple elephants"})

	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Equal(t, SearchTypeNoCriteria, result.Metadata.SearchType)
	assert.Equal(t, "purple elephants", result.Metadata.OriginalQuery)
	assert.Zero(t, result.Metadata.ResultCount)
}

func TestSearchStateModeSortsAlphabetically(t *testing.T) {
	var gotFilter repositories.ListingFilter
	listings := &stubListingRepo{
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			gotFilter = filter
			return []*entities.ServiceListing{
				approvedListing("Zelda's Grooming", "46240", 39.9, -86.1),
				approvedListing("Apex Pet Spa", "46032", 39.95, -86.12),
			}, nil
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, nil, 100)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "groomers in Indiana"})

	require.NoError(t, err)
	assert.Equal(t, "groomer", gotFilter.ServiceType)
	assert.Equal(t, "IN", gotFilter.State)
	assert.Equal(t, entities.ListingStatusApproved, gotFilter.Status)

	require.Len(t, result.Results, 2)
	assert.Equal(t, "Apex Pet Spa", result.Results[0].Name())
	assert.Equal(t, "Zelda's Grooming", result.Results[1].Name())
	assert.Equal(t, SearchTypeState, result.Metadata.SearchType)
	assert.Equal(t, 2, result.Metadata.Breakdown.Services)
}

func TestSearchPostalRadiusMergesExactAndNearby(t *testing.T) {
	var gotRadius repositories.RadiusParams
	listings := &stubListingRepo{
		findZipFn: func(ctx context.Context, zipCode string) (*entities.ServiceListing, error) {
			return approvedListing("Zip Anchor", zipCode, 39.9064, -86.1220), nil
		},
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{
				approvedListing("Zeta Exact", "46240", 39.9064, -86.1220),
				approvedListing("Alpha Exact", "46240", 39.9064, -86.1220),
			}, nil
		},
		radiusFn: func(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
			gotRadius = params
			return []*entities.ServiceListing{
				approvedListing("Far Groomer", "46038", 40.05, -86.02),
				approvedListing("Near Groomer", "46032", 39.93, -86.13),
			}, nil
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, nil, 100)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "groomers in 46240"})

	require.NoError(t, err)
	assert.Equal(t, "46240", gotRadius.ExcludeZip)
	assert.Equal(t, 25.0, gotRadius.RadiusMiles)

	require.Len(t, result.Results, 4)
	// Exact matches first, alphabetical; then nearby by ascending distance.
	assert.Equal(t, "Alpha Exact", result.Results[0].Name())
	assert.Equal(t, "Zeta Exact", result.Results[1].Name())
	assert.Equal(t, "Near Groomer", result.Results[2].Name())
	assert.Equal(t, "Far Groomer", result.Results[3].Name())

	assert.Equal(t, SearchTypePostalRadius, result.Metadata.SearchType)
	require.NotNil(t, result.Metadata.EnhancedSearch)
	assert.Equal(t, "46240", result.Metadata.EnhancedSearch.TargetZipCode)
	assert.Equal(t, 2, result.Metadata.EnhancedSearch.ExactMatchCount)
	assert.Equal(t, 2, result.Metadata.EnhancedSearch.RadiusResultsCount)
}

func TestSearchPostalDegradesToExactMatches(t *testing.T) {
	radiusCalled := false
	listings := &stubListingRepo{
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{approvedListing("Only Exact", "99999", 0, 0)}, nil
		},
		radiusFn: func(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
			radiusCalled = true
			return nil, nil
		},
	}
	// Zip is unknown to both storage and the geocoder.
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, &stubGeocoder{}, 100)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "groomers in 99999"})

	require.NoError(t, err)
	assert.False(t, radiusCalled)
	require.Len(t, result.Results, 1)
	assert.Equal(t, SearchTypePostalExact, result.Metadata.SearchType)
	assert.Nil(t, result.Metadata.EnhancedSearch)
}

func TestSearchNearMeRequiresLocation(t *testing.T) {
	svc := newSearchServiceForTest(&stubListingRepo{}, &stubProductRepo{}, &stubCategoryRepo{}, nil, 100)

	_, err := svc.Search(context.Background(), SearchRequest{Query: "groomers near me"})

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestSearchNearMeSortsByDistance(t *testing.T) {
	listings := &stubListingRepo{
		radiusFn: func(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{
				approvedListing("Far Groomer", "46038", 40.05, -86.02),
				approvedListing("Near Groomer", "46032", 39.93, -86.13),
			}, nil
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, nil, 100)

	result, err := svc.Search(context.Background(), SearchRequest{
		Query:        "groomers near me",
		UserLocation: &UserLocation{Lat: 39.9064, Lng: -86.1220},
	})

	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "Near Groomer", result.Results[0].Name())
	assert.Equal(t, "Far Groomer", result.Results[1].Name())
	assert.Equal(t, SearchTypeNearMe, result.Metadata.SearchType)
}

func TestSearchNearMeStorageFailureIsHardError(t *testing.T) {
	listings := &stubListingRepo{
		radiusFn: func(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
			return nil, apperrors.NewInternalError("database unreachable", nil)
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, nil, 100)

	_, err := svc.Search(context.Background(), SearchRequest{
		Query:        "groomers near me",
		UserLocation: &UserLocation{Lat: 39.9, Lng: -86.1},
	})

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}

func TestSearchProductSignalFetchesAndScoresProducts(t *testing.T) {
	products := &stubProductRepo{
		listFn: func(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
			return []*entities.Product{
				{Name: "Cat Tree", Description: "climbing tower", Categories: []string{"furniture"}},
				{Name: "Dog Shampoo", Description: "grooming shampoo for dogs", Categories: []string{"grooming products"}},
			}, nil
		},
	}
	svc := newSearchServiceForTest(&stubListingRepo{}, products, &stubCategoryRepo{}, nil, 100)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "dog grooming products"})

	require.NoError(t, err)
	assert.Equal(t, SearchTypeGeneral, result.Metadata.SearchType)
	assert.Positive(t, result.Metadata.Breakdown.Products)
	for _, c := range result.Results {
		if c.Kind == entities.CandidateProduct {
			assert.GreaterOrEqual(t, c.RelevanceScore, 5)
			assert.NotEqual(t, "Cat Tree", c.Product.Name)
		}
	}
}

func TestSearchCapsResults(t *testing.T) {
	listings := &stubListingRepo{
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{
				approvedListing("A", "46240", 0, 0),
				approvedListing("B", "46240", 0, 0),
				approvedListing("C", "46240", 0, 0),
				approvedListing("D", "46240", 0, 0),
			}, nil
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, nil, 3)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "groomers in Indiana"})

	require.NoError(t, err)
	assert.Len(t, result.Results, 3)
	assert.True(t, result.Metadata.Capped)
	assert.Equal(t, 3, result.Metadata.ResultCount)
}

func TestSearchDynamicCategoriesDriveDetection(t *testing.T) {
	cats := &stubCategoryRepo{
		serviceCats: []*entities.ServiceCategory{
			{ID: "aquatics", DisplayName: "Dog Swimming", Keywords: []string{"hydrotherapy"}},
		},
	}
	var gotFilter repositories.ListingFilter
	listings := &stubListingRepo{
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, cats, nil, 100)

	_, err := svc.Search(context.Background(), SearchRequest{Query: "hydrotherapy in Indiana"})

	require.NoError(t, err)
	assert.Equal(t, "aquatics", gotFilter.ServiceType)
}

func TestSearchBareZipIsALocationCriterion(t *testing.T) {
	geocoder := &stubGeocoder{result: &providers.GeocodeResult{Success: true, Latitude: 39.9064, Longitude: -86.1220}}
	var gotListingFilter repositories.ListingFilter
	listings := &stubListingRepo{
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			gotListingFilter = filter
			return []*entities.ServiceListing{approvedListing("Zionsville Kennels", "46240", 39.91, -86.11)}, nil
		},
		radiusFn: func(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{approvedListing("Broad Ripple Bath House", "46220", 39.87, -86.14)}, nil
		},
	}
	products := &stubProductRepo{
		listFn: func(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
			return []*entities.Product{{
				Name:     "Pawsome Chews",
				ZipCode:  "46240",
				Location: &entities.Coordinates{Latitude: 39.9064, Longitude: -86.1220},
				IsActive: true,
			}}, nil
		},
	}
	svc := newSearchServiceForTest(listings, products, &stubCategoryRepo{}, geocoder, 100)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "46240"})

	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.calls, "geocoding should be invoked exactly once")
	// No category narrowing applies; the zip is the whole criterion.
	assert.Empty(t, gotListingFilter.ServiceType)
	assert.Equal(t, "46240", gotListingFilter.ZipCode)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "Pawsome Chews", result.Results[0].Name())
	assert.Equal(t, "Zionsville Kennels", result.Results[1].Name())
	assert.Equal(t, "Broad Ripple Bath House", result.Results[2].Name())

	assert.Equal(t, SearchTypePostalRadius, result.Metadata.SearchType)
	assert.Equal(t, 2, result.Metadata.Breakdown.Services)
	assert.Equal(t, 1, result.Metadata.Breakdown.Products)
	require.NotNil(t, result.Metadata.EnhancedSearch)
	assert.Equal(t, 2, result.Metadata.EnhancedSearch.ExactMatchCount)
	assert.Equal(t, 1, result.Metadata.EnhancedSearch.RadiusResultsCount)
}

func TestSearchBareZipGeocodeFailureRestrictsToExactZip(t *testing.T) {
	geocoder := &stubGeocoder{err: errors.New("geocoder down")}
	radiusCalled := false
	listings := &stubListingRepo{
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{approvedListing("Only Exact", "46240", 0, 0)}, nil
		},
		radiusFn: func(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
			radiusCalled = true
			return nil, nil
		},
	}
	products := &stubProductRepo{
		listFn: func(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
			return []*entities.Product{{Name: "Zip Local Treats", ZipCode: "46240", IsActive: true}}, nil
		},
	}
	svc := newSearchServiceForTest(listings, products, &stubCategoryRepo{}, geocoder, 100)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "46240"})

	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.calls)
	assert.False(t, radiusCalled)
	require.Len(t, result.Results, 2)
	assert.Equal(t, SearchTypePostalExact, result.Metadata.SearchType)
	assert.Nil(t, result.Metadata.EnhancedSearch)
}

func TestSearchPostalCountsFollowTheCap(t *testing.T) {
	listings := &stubListingRepo{
		findZipFn: func(ctx context.Context, zipCode string) (*entities.ServiceListing, error) {
			return approvedListing("Zip Anchor", zipCode, 39.9064, -86.1220), nil
		},
		listFn: func(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{approvedListing("Exact Groomer", "46240", 39.9064, -86.1220)}, nil
		},
		radiusFn: func(ctx context.Context, params repositories.RadiusParams) ([]*entities.ServiceListing, error) {
			return []*entities.ServiceListing{
				approvedListing("Near Groomer", "46032", 39.93, -86.13),
				approvedListing("Mid Groomer", "46033", 39.97, -86.10),
				approvedListing("Far Groomer", "46038", 40.05, -86.02),
			}, nil
		},
	}
	svc := newSearchServiceForTest(listings, &stubProductRepo{}, &stubCategoryRepo{}, nil, 2)

	result, err := svc.Search(context.Background(), SearchRequest{Query: "groomers in 46240"})

	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Metadata.Capped)

	require.NotNil(t, result.Metadata.EnhancedSearch)
	assert.Equal(t, 1, result.Metadata.EnhancedSearch.ExactMatchCount)
	assert.Equal(t, 1, result.Metadata.EnhancedSearch.RadiusResultsCount)
	assert.Equal(t, result.Metadata.ResultCount,
		result.Metadata.EnhancedSearch.ExactMatchCount+result.Metadata.EnhancedSearch.RadiusResultsCount)
}
