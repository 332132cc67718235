package services

import (
	"sort"
	"strings"
)

// stateNames maps full US state names (lowercase) to their 2-letter codes.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// stateCodes is the set of valid 2-letter codes.
var stateCodes = func() map[string]struct{} {
	set := make(map[string]struct{}, len(stateNames))
	for _, code := range stateNames {
		set[strings.ToLower(code)] = struct{}{}
	}
	return set
}()

// ambiguousStateCodes are 2-letter codes that double as common English words
// in lowercase queries; they are never treated as state tokens ("groomers in
// chicago" must not read "in" as Indiana).
var ambiguousStateCodes = map[string]struct{}{
	"in": {}, "or": {}, "me": {}, "hi": {}, "ok": {}, "de": {}, "oh": {},
	"id": {}, "la": {},
}

// orderedStateNames lists full names longest first so "west virginia" is
// tried before "virginia".
var orderedStateNames = func() []string {
	names := make([]string, 0, len(stateNames))
	for name := range stateNames {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// matchStateName returns the 2-letter code of the first full state name
// contained in the normalized query, or "".
func matchStateName(normalized string) string {
	padded := " " + normalized + " "
	for _, name := range orderedStateNames {
		if strings.Contains(padded, " "+name+" ") {
			return stateNames[name]
		}
	}
	return ""
}

// matchStateCode returns the uppercase code of the first standalone,
// unambiguous 2-letter state token in the normalized query, or "".
func matchStateCode(normalized string) string {
	for _, token := range strings.Fields(normalized) {
		if len(token) != 2 {
			continue
		}
		if _, ambiguous := ambiguousStateCodes[token]; ambiguous {
			continue
		}
		if _, ok := stateCodes[token]; ok {
			return strings.ToUpper(token)
		}
	}
	return ""
}

// containsStateToken reports whether the normalized query mentions any state
// by full name or unambiguous 2-letter code.
func containsStateToken(normalized string) bool {
	return matchStateName(normalized) != "" || matchStateCode(normalized) != ""
}
