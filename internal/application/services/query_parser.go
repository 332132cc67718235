package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// LocationMode identifies how a query constrains location.
type LocationMode string

const (
	LocationNone         LocationMode = "none"
	LocationState        LocationMode = "state"
	LocationPostalRadius LocationMode = "postal_radius"
	LocationNearMe       LocationMode = "near_me"
)

// ParsedIntent is the structured reading of a raw search query. It is
// derived purely from the query text and the current category list, and is
// never mutated after parsing.
type ParsedIntent struct {
	ServiceType   string       `json:"serviceType,omitempty"`
	LocationMode  LocationMode `json:"locationMode"`
	LocationValue string       `json:"locationValue,omitempty"`
	RadiusMiles   float64      `json:"radiusMiles,omitempty"`
}

// Pattern renders the intent as a compact string for response metadata.
func (p ParsedIntent) Pattern() string {
	service := p.ServiceType
	if service == "" {
		service = "any"
	}
	if p.LocationValue != "" {
		return fmt.Sprintf("service:%s location:%s:%s", service, p.LocationMode, p.LocationValue)
	}
	return fmt.Sprintf("service:%s location:%s", service, p.LocationMode)
}

var postalCodeRe = regexp.MustCompile(`\b(\d{5})\b`)

// proximityIdioms always read as a near-me search, whatever else the query
// says short of a postal code.
var proximityIdioms = []string{
	"near me", "nearby", "close by", "close to me", "in the area",
	"in my area", "around me", "around here",
}

// proximityWords trigger a near-me search only when the query mentions no
// state. Heuristic: "close to indiana" stays a state search.
var proximityWords = []string{"close", "near", "local", "around"}

// QueryParser turns raw queries into ParsedIntent values. The fallback
// keyword table is injected so tests can substitute it and so degraded
// operation (category collection unavailable) is explicit.
type QueryParser struct {
	fallback      KeywordTable
	defaultRadius float64
}

// NewQueryParser creates a query parser.
func NewQueryParser(fallback KeywordTable, defaultRadiusMiles float64) *QueryParser {
	if defaultRadiusMiles <= 0 {
		defaultRadiusMiles = 25
	}
	return &QueryParser{fallback: fallback, defaultRadius: defaultRadiusMiles}
}

// Parse derives the structured intent for a query. categories may be empty
// when the category collection is unavailable; the fallback table is used
// instead so parsing degrades rather than fails.
func (p *QueryParser) Parse(query string, categories []*entities.ServiceCategory) ParsedIntent {
	normalized := normalizeQuery(query)

	intent := ParsedIntent{LocationMode: LocationNone}
	if normalized == "" {
		return intent
	}

	intent.ServiceType = p.detectServiceType(normalized, categories)

	// Postal code beats everything else, including an explicit state
	// mention elsewhere in the query.
	if m := postalCodeRe.FindStringSubmatch(normalized); m != nil {
		intent.LocationMode = LocationPostalRadius
		intent.LocationValue = m[1]
		intent.RadiusMiles = p.defaultRadius
		return intent
	}

	if matchesProximity(normalized) {
		intent.LocationMode = LocationNearMe
		intent.RadiusMiles = p.defaultRadius
		return intent
	}

	if code := matchStateName(normalized); code != "" {
		intent.LocationMode = LocationState
		intent.LocationValue = code
		return intent
	}
	if code := matchStateCode(normalized); code != "" {
		intent.LocationMode = LocationState
		intent.LocationValue = code
		return intent
	}

	return intent
}

func (p *QueryParser) detectServiceType(normalized string, categories []*entities.ServiceCategory) string {
	// First match wins; iteration order over the category list is the
	// tie-break. No scoring across categories.
	for _, category := range categories {
		if name := strings.ToLower(category.DisplayName); name != "" && strings.Contains(normalized, name) {
			return category.ID
		}
		for _, keyword := range category.Keywords {
			if kw := strings.ToLower(keyword); kw != "" && strings.Contains(normalized, kw) {
				return category.ID
			}
		}
	}

	if len(categories) > 0 {
		return ""
	}

	// Category collection unavailable: degrade to the fixed table.
	for _, entry := range p.fallback {
		for _, term := range entry.Terms {
			if strings.Contains(normalized, term) {
				return entry.ServiceType
			}
		}
	}
	return ""
}

func matchesProximity(normalized string) bool {
	for _, idiom := range proximityIdioms {
		if strings.Contains(normalized, idiom) {
			return true
		}
	}

	// Contextual rule: a bare proximity word counts only when no state is
	// mentioned anywhere in the query.
	if containsStateToken(normalized) {
		return false
	}
	tokens := strings.Fields(normalized)
	for _, word := range proximityWords {
		for _, token := range tokens {
			if token == word {
				return true
			}
		}
	}
	return false
}

func normalizeQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Join(strings.Fields(q), " ")
}
