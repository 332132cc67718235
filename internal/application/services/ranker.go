package services

import (
	"math"
	"sort"
	"strings"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// SortExactThenDistance orders candidates for a postal-radius search with
// resolved coordinates: exact-zip matches first (alphabetical among
// themselves, they are all equally "here"), then radius matches by ascending
// distance. Unknown distances sort last, alphabetical among themselves.
// Returns a new slice.
func SortExactThenDistance(candidates []entities.Candidate) []entities.Candidate {
	sorted := copyCandidates(candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsExactLocationMatch != b.IsExactLocationMatch {
			return a.IsExactLocationMatch
		}
		if a.IsExactLocationMatch {
			return lessByName(a, b)
		}
		return lessByDistance(a, b)
	})
	return sorted
}

// SortByDistance orders candidates by ascending distance, unknown distances
// last with alphabetical tie-break. Returns a new slice.
func SortByDistance(candidates []entities.Candidate) []entities.Candidate {
	sorted := copyCandidates(candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessByDistance(sorted[i], sorted[j])
	})
	return sorted
}

// SortAlphabetical orders candidates by name. Returns a new slice.
func SortAlphabetical(candidates []entities.Candidate) []entities.Candidate {
	sorted := copyCandidates(candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessByName(sorted[i], sorted[j])
	})
	return sorted
}

func lessByDistance(a, b entities.Candidate) bool {
	aInf := math.IsInf(a.DistanceMiles, 1)
	bInf := math.IsInf(b.DistanceMiles, 1)
	if aInf && bInf {
		return lessByName(a, b)
	}
	if aInf || bInf {
		return bInf
	}
	if a.DistanceMiles != b.DistanceMiles {
		return a.DistanceMiles < b.DistanceMiles
	}
	return lessByName(a, b)
}

func lessByName(a, b entities.Candidate) bool {
	return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
}

func copyCandidates(candidates []entities.Candidate) []entities.Candidate {
	out := make([]entities.Candidate, len(candidates))
	copy(out, candidates)
	return out
}
