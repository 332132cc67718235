package entities

// SearchFilters echoes back the criteria the resolver applied.
type SearchFilters struct {
	ServiceType   string  `json:"serviceType,omitempty"`
	LocationType  string  `json:"locationType,omitempty"`
	LocationValue string  `json:"locationValue,omitempty"`
	Radius        float64 `json:"radius,omitempty"`
}

// SearchBreakdown reports per-collection result counts.
type SearchBreakdown struct {
	Services int `json:"services"`
	Products int `json:"products"`
}

// EnhancedSearchInfo describes a postal-radius search that ran with resolved
// coordinates (exact-zip matches unioned with a radius fetch).
type EnhancedSearchInfo struct {
	TargetZipCode      string  `json:"targetZipCode"`
	SearchRadius       float64 `json:"searchRadius"`
	ExactMatchCount    int     `json:"exactMatchCount"`
	RadiusResultsCount int     `json:"radiusResultsCount"`
}

// SearchMetadata accompanies every result set and explains what the resolver
// did with the query.
type SearchMetadata struct {
	OriginalQuery  string              `json:"originalQuery"`
	ParsedPattern  string              `json:"parsedPattern"`
	ResultCount    int                 `json:"resultCount"`
	SearchType     string              `json:"searchType"`
	Filters        SearchFilters       `json:"filters"`
	Breakdown      SearchBreakdown     `json:"breakdown"`
	Capped         bool                `json:"capped,omitempty"`
	EnhancedSearch *EnhancedSearchInfo `json:"enhancedSearch,omitempty"`
}

// RankedResultSet is the final ordered result list, services and products
// interleaved by the ranking rule.
type RankedResultSet struct {
	Results  []Candidate    `json:"results"`
	Metadata SearchMetadata `json:"metadata"`
}
