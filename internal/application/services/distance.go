package services

import (
	"math"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// earthRadiusMiles is the mean Earth radius in miles.
const earthRadiusMiles = 3959.0

// HaversineMiles computes the great-circle distance between two coordinates
// in miles.
func HaversineMiles(from, to entities.Coordinates) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLng := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	return 2 * earthRadiusMiles * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// AnnotateDistances returns a new slice with each candidate's distance from
// the origin filled in. Exact-location matches stay at zero; candidates
// without coordinates get the +Inf sentinel. Input candidates are not
// mutated.
func AnnotateDistances(candidates []entities.Candidate, origin entities.Coordinates) []entities.Candidate {
	annotated := make([]entities.Candidate, len(candidates))
	for i, c := range candidates {
		if c.IsExactLocationMatch {
			c.DistanceMiles = 0
		} else if loc := c.Location(); loc != nil {
			c.DistanceMiles = HaversineMiles(origin, *loc)
		} else {
			c.DistanceMiles = math.Inf(1)
		}
		annotated[i] = c
	}
	return annotated
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
