package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/observability"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

// Search type labels reported in response metadata.
const (
	SearchTypeNoCriteria   = "no_criteria"
	SearchTypeState        = "state"
	SearchTypePostalRadius = "postal_radius"
	SearchTypePostalExact  = "postal_exact"
	SearchTypeNearMe       = "near_me"
	SearchTypeGeneral      = "general"
)

// UserLocation is the caller-supplied device location.
type UserLocation struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Zip   string  `json:"zip,omitempty"`
	City  string  `json:"city,omitempty"`
	State string  `json:"state,omitempty"`
}

// SearchRequest is one natural-language search invocation.
type SearchRequest struct {
	Query        string        `json:"query"`
	UserLocation *UserLocation `json:"userLocation,omitempty"`
}

// SearchService runs the full resolver pipeline: parse, resolve location,
// fetch both collections, annotate, score, rank, assemble. It is stateless
// per request; invocations may run concurrently.
type SearchService struct {
	listings   repositories.ListingRepository
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	parser     *QueryParser
	matcher    *CategoryMatcher
	resolver   *LocationResolver
	analytics  *SearchAnalyticsService
	metrics    *observability.Metrics
	maxResults int
}

// NewSearchService creates a search service.
func NewSearchService(
	listings repositories.ListingRepository,
	products repositories.ProductRepository,
	categories repositories.CategoryRepository,
	parser *QueryParser,
	matcher *CategoryMatcher,
	resolver *LocationResolver,
	maxResults int,
) *SearchService {
	if maxResults <= 0 {
		maxResults = 100
	}
	return &SearchService{
		listings:   listings,
		products:   products,
		categories: categories,
		parser:     parser,
		matcher:    matcher,
		resolver:   resolver,
		maxResults: maxResults,
	}
}

// SetAnalytics enables fire-and-forget search event tracking.
func (s *SearchService) SetAnalytics(analytics *SearchAnalyticsService) {
	s.analytics = analytics
}

// SetMetrics enables search counters.
func (s *SearchService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Search resolves a free-text query to a ranked result set.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*entities.RankedResultSet, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	start := time.Now()

	serviceCats, productCats := s.loadTaxonomies(ctx)

	intent := s.parser.Parse(query, serviceCats)
	productSignal := s.matcher.ProductSignal(query, productCats)

	// A parsed location is a search criterion on its own: a bare postal
	// code still resolves and fetches both collections. Only queries with
	// no category, no product signal, and no location short-circuit.
	if intent.ServiceType == "" && !productSignal && intent.LocationMode == LocationNone {
		result := s.assemble(query, intent, nil, nil, nil, SearchTypeNoCriteria, nil)
		s.record(ctx, query, intent, 0, start, req.UserLocation)
		return result, nil
	}

	var userCoords *entities.Coordinates
	if req.UserLocation != nil {
		userCoords = &entities.Coordinates{Latitude: req.UserLocation.Lat, Longitude: req.UserLocation.Lng}
	}

	origin, err := s.resolver.Resolve(ctx, intent, userCoords)
	if err != nil {
		return nil, err
	}

	services, products, err := s.fetchCollections(ctx, intent, productSignal, origin)
	if err != nil {
		return nil, err
	}

	// Products are fetched without a hard category filter, so a product
	// signal narrows them by text relevance instead. Location-only queries
	// carry no product text to score against, so they keep everything.
	if productSignal && len(products) > 0 {
		products = ScoreProducts(products, query)
	}

	var results []entities.Candidate
	var enhanced *entities.EnhancedSearchInfo
	searchType := SearchTypeGeneral

	switch {
	case intent.LocationMode == LocationPostalRadius && origin != nil && origin.Coordinates != nil:
		merged := AnnotateDistances(mergeCandidates(services, products), *origin.Coordinates)
		results = SortExactThenDistance(merged)
		searchType = SearchTypePostalRadius

	case intent.LocationMode == LocationPostalRadius:
		// Zip could not be resolved; exact matches only, no distances.
		results = SortAlphabetical(mergeCandidates(services, products))
		searchType = SearchTypePostalExact

	case intent.LocationMode == LocationNearMe:
		merged := AnnotateDistances(mergeCandidates(services, products), *origin.Coordinates)
		results = SortByDistance(merged)
		searchType = SearchTypeNearMe

	case intent.LocationMode == LocationState:
		results = SortAlphabetical(mergeCandidates(services, products))
		searchType = SearchTypeState

	default:
		// No location criterion: services alphabetical, products keep
		// relevance order as the more specific signal.
		results = mergeCandidates(SortAlphabetical(services), products)
	}

	capped := false
	if len(results) > s.maxResults {
		results = results[:s.maxResults]
		capped = true
	}

	// Counts describe what is actually returned, so they are taken after
	// the cap.
	if searchType == SearchTypePostalRadius {
		exact := countExact(results)
		enhanced = &entities.EnhancedSearchInfo{
			TargetZipCode:      origin.TargetZip,
			SearchRadius:       origin.RadiusMiles,
			ExactMatchCount:    exact,
			RadiusResultsCount: len(results) - exact,
		}
	}

	result := s.assemble(query, intent, results, enhanced, origin, searchType, &capped)
	s.record(ctx, query, intent, len(results), start, req.UserLocation)
	return result, nil
}

// fetchCollections issues the decided per-collection fetches. The two
// collections are independent, so they run concurrently.
func (s *SearchService) fetchCollections(ctx context.Context, intent ParsedIntent, productSignal bool, origin *ResolvedOrigin) ([]entities.Candidate, []entities.Candidate, error) {
	var (
		wg       sync.WaitGroup
		services []entities.Candidate
		products []entities.Candidate
		svcErr   error
		prodErr  error
	)

	// When the location is the only criterion, both collections are
	// fetched location-filtered with no category narrowing.
	locationOnly := intent.ServiceType == "" && !productSignal

	if intent.ServiceType != "" || locationOnly {
		wg.Add(1)
		go func() {
			defer wg.Done()
			services, svcErr = s.fetchServices(ctx, intent, origin)
		}()
	}
	if productSignal || locationOnly {
		wg.Add(1)
		go func() {
			defer wg.Done()
			products, prodErr = s.fetchProducts(ctx, intent, origin)
		}()
	}
	wg.Wait()

	if svcErr != nil {
		return nil, nil, svcErr
	}
	if prodErr != nil {
		return nil, nil, prodErr
	}
	return services, products, nil
}

func (s *SearchService) fetchServices(ctx context.Context, intent ParsedIntent, origin *ResolvedOrigin) ([]entities.Candidate, error) {
	switch intent.LocationMode {
	case LocationState:
		listings, err := s.listings.List(ctx, repositories.ListingFilter{
			ServiceType: intent.ServiceType,
			State:       intent.LocationValue,
			Status:      entities.ListingStatusApproved,
			Limit:       s.maxResults,
		})
		if err != nil {
			return nil, err
		}
		return serviceCandidates(listings, false), nil

	case LocationPostalRadius:
		exact, err := s.listings.List(ctx, repositories.ListingFilter{
			ServiceType: intent.ServiceType,
			ZipCode:     origin.TargetZip,
			Status:      entities.ListingStatusApproved,
			Limit:       s.maxResults,
		})
		if err != nil {
			return nil, err
		}
		candidates := serviceCandidates(exact, true)

		if origin.Coordinates != nil {
			nearby, err := s.listings.SearchWithinRadius(ctx, repositories.RadiusParams{
				Latitude:    origin.Coordinates.Latitude,
				Longitude:   origin.Coordinates.Longitude,
				RadiusMiles: origin.RadiusMiles,
				ServiceType: intent.ServiceType,
				ExcludeZip:  origin.TargetZip,
				Limit:       s.maxResults,
			})
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, serviceCandidates(nearby, false)...)
		}
		return candidates, nil

	case LocationNearMe:
		nearby, err := s.listings.SearchWithinRadius(ctx, repositories.RadiusParams{
			Latitude:    origin.Coordinates.Latitude,
			Longitude:   origin.Coordinates.Longitude,
			RadiusMiles: origin.RadiusMiles,
			ServiceType: intent.ServiceType,
			Limit:       s.maxResults,
		})
		if err != nil {
			// A failed radius search must not masquerade as "no results".
			return nil, apperrors.NewExternalError("radius search failed", err)
		}
		return serviceCandidates(nearby, false), nil

	default:
		listings, err := s.listings.List(ctx, repositories.ListingFilter{
			ServiceType: intent.ServiceType,
			Status:      entities.ListingStatusApproved,
			Limit:       s.maxResults,
		})
		if err != nil {
			return nil, err
		}
		return serviceCandidates(listings, false), nil
	}
}

func (s *SearchService) fetchProducts(ctx context.Context, intent ParsedIntent, origin *ResolvedOrigin) ([]entities.Candidate, error) {
	switch intent.LocationMode {
	case LocationState:
		items, err := s.products.List(ctx, repositories.ProductFilter{
			State: intent.LocationValue,
			Limit: s.maxResults,
		})
		if err != nil {
			return nil, err
		}
		return productCandidates(items, false), nil

	case LocationPostalRadius:
		exact, err := s.products.List(ctx, repositories.ProductFilter{
			ZipCode: origin.TargetZip,
			Limit:   s.maxResults,
		})
		if err != nil {
			return nil, err
		}
		candidates := productCandidates(exact, true)

		if origin.Coordinates != nil {
			nearby, err := s.products.SearchWithinRadius(ctx, repositories.RadiusParams{
				Latitude:    origin.Coordinates.Latitude,
				Longitude:   origin.Coordinates.Longitude,
				RadiusMiles: origin.RadiusMiles,
				ExcludeZip:  origin.TargetZip,
				Limit:       s.maxResults,
			})
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, productCandidates(nearby, false)...)
		}
		return candidates, nil

	case LocationNearMe:
		nearby, err := s.products.SearchWithinRadius(ctx, repositories.RadiusParams{
			Latitude:    origin.Coordinates.Latitude,
			Longitude:   origin.Coordinates.Longitude,
			RadiusMiles: origin.RadiusMiles,
			Limit:       s.maxResults,
		})
		if err != nil {
			return nil, apperrors.NewExternalError("radius search failed", err)
		}
		return productCandidates(nearby, false), nil

	default:
		items, err := s.products.List(ctx, repositories.ProductFilter{Limit: s.maxResults})
		if err != nil {
			return nil, err
		}
		return productCandidates(items, false), nil
	}
}

func (s *SearchService) loadTaxonomies(ctx context.Context) ([]*entities.ServiceCategory, []*entities.ProductCategory) {
	logger := observability.LoggerFromContext(ctx)

	serviceCats, err := s.categories.ListServiceCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("service category fetch failed; using keyword fallback")
		serviceCats = nil
	}
	productCats, err := s.categories.ListProductCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("product category fetch failed; product signal limited to explicit mentions")
		productCats = nil
	}
	return serviceCats, productCats
}

func (s *SearchService) assemble(
	query string,
	intent ParsedIntent,
	results []entities.Candidate,
	enhanced *entities.EnhancedSearchInfo,
	origin *ResolvedOrigin,
	searchType string,
	capped *bool,
) *entities.RankedResultSet {
	if results == nil {
		results = []entities.Candidate{}
	}

	breakdown := entities.SearchBreakdown{}
	for _, c := range results {
		switch c.Kind {
		case entities.CandidateService:
			breakdown.Services++
		case entities.CandidateProduct:
			breakdown.Products++
		}
	}

	metadata := entities.SearchMetadata{
		OriginalQuery: query,
		ParsedPattern: intent.Pattern(),
		ResultCount:   len(results),
		SearchType:    searchType,
		Filters: entities.SearchFilters{
			ServiceType:   intent.ServiceType,
			LocationType:  string(intent.LocationMode),
			LocationValue: intent.LocationValue,
			Radius:        intent.RadiusMiles,
		},
		Breakdown:      breakdown,
		EnhancedSearch: enhanced,
	}
	if capped != nil {
		metadata.Capped = *capped
	}

	return &entities.RankedResultSet{Results: results, Metadata: metadata}
}

func (s *SearchService) record(ctx context.Context, query string, intent ParsedIntent, resultCount int, start time.Time, userLocation *UserLocation) {
	observability.RecordSearchMetric(ctx, s.metrics, string(intent.LocationMode), resultCount)

	if s.analytics == nil {
		return
	}
	event := &entities.SearchEvent{
		Query:         query,
		ServiceType:   intent.ServiceType,
		LocationMode:  string(intent.LocationMode),
		LocationValue: intent.LocationValue,
		ResultCount:   resultCount,
		LatencyMs:     int(time.Since(start).Milliseconds()),
	}
	if userLocation != nil {
		event.UserLatitude = userLocation.Lat
		event.UserLongitude = userLocation.Lng
	}
	s.analytics.TrackSearch(ctx, event)
}

func serviceCandidates(listings []*entities.ServiceListing, exact bool) []entities.Candidate {
	candidates := make([]entities.Candidate, 0, len(listings))
	for _, listing := range listings {
		c := entities.NewServiceCandidate(listing)
		if exact {
			c.IsExactLocationMatch = true
			c.DistanceMiles = 0
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func productCandidates(products []*entities.Product, exact bool) []entities.Candidate {
	candidates := make([]entities.Candidate, 0, len(products))
	for _, product := range products {
		c := entities.NewProductCandidate(product)
		if exact {
			c.IsExactLocationMatch = true
			c.DistanceMiles = 0
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func mergeCandidates(a, b []entities.Candidate) []entities.Candidate {
	merged := make([]entities.Candidate, 0, len(a)+len(b))
	merged = append(merged, a...)
	return append(merged, b...)
}

func countExact(candidates []entities.Candidate) int {
	n := 0
	for _, c := range candidates {
		if c.IsExactLocationMatch {
			n++
		}
	}
	return n
}
