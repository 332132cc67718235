package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gimmesomedew/pawdirectory/internal/application/services"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService  *services.SearchService
	listingService *services.ListingService
	analytics      *services.SearchAnalyticsService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService, listingService *services.ListingService, analytics *services.SearchAnalyticsService) *SearchHandler {
	return &SearchHandler{
		searchService:  searchService,
		listingService: listingService,
		analytics:      analytics,
	}
}

// Search handles GET /api/search. The query goes in ?q= and the optional
// device location in ?lat= and ?lng=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := services.SearchRequest{Query: r.URL.Query().Get("q")}

	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			respondWithError(w, http.StatusBadRequest, "lat and lng must be numbers")
			return
		}
		req.UserLocation = &services.UserLocation{Lat: lat, Lng: lng}
	}

	h.runSearch(w, r, req)
}

// SearchPost handles POST /api/search with a JSON body.
func (h *SearchHandler) SearchPost(w http.ResponseWriter, r *http.Request) {
	var req services.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.runSearch(w, r, req)
}

func (h *SearchHandler) runSearch(w http.ResponseWriter, r *http.Request, req services.SearchRequest) {
	result, err := h.searchService.Search(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"results":  result.Results,
		"metadata": result.Metadata,
	})
}

// Suggest handles GET /api/search/suggest for name typeahead.
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil {
			limit = n
		}
	}

	listings, err := h.listingService.Suggest(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": listings,
		"count":       len(listings),
	})
}

// ZeroResultQueries handles GET /api/search/zero-results. It surfaces
// recent queries that returned nothing, for taxonomy tuning.
func (h *SearchHandler) ZeroResultQueries(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		respondWithError(w, http.StatusNotFound, "search analytics not enabled")
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil {
			limit = n
		}
	}

	events, err := h.analytics.GetZeroResultQueries(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": events,
		"count":   len(events),
	})
}
