package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

func TestHaversineMiles(t *testing.T) {
	indianapolis := entities.Coordinates{Latitude: 39.7684, Longitude: -86.1581}
	chicago := entities.Coordinates{Latitude: 41.8781, Longitude: -87.6298}

	distance := HaversineMiles(indianapolis, chicago)

	// Road atlases put these about 165 miles apart great-circle.
	assert.InDelta(t, 165, distance, 5)
}

func TestHaversineMilesZeroDistance(t *testing.T) {
	point := entities.Coordinates{Latitude: 39.9064, Longitude: -86.1220}
	assert.Zero(t, HaversineMiles(point, point))
}

func TestAnnotateDistances(t *testing.T) {
	origin := entities.Coordinates{Latitude: 39.9064, Longitude: -86.1220}

	withCoords := entities.NewServiceCandidate(&entities.ServiceListing{
		Name:     "Wagging Tails",
		Location: &entities.Coordinates{Latitude: 39.7684, Longitude: -86.1581},
	})
	exact := entities.NewServiceCandidate(&entities.ServiceListing{
		Name:     "Zip Local",
		Location: &entities.Coordinates{Latitude: 41.8781, Longitude: -87.6298},
	})
	exact.IsExactLocationMatch = true
	noCoords := entities.NewServiceCandidate(&entities.ServiceListing{Name: "No Address"})

	annotated := AnnotateDistances([]entities.Candidate{withCoords, exact, noCoords}, origin)

	assert.Greater(t, annotated[0].DistanceMiles, 0.0)
	assert.Less(t, annotated[0].DistanceMiles, 20.0)
	// Exact matches stay at zero regardless of stored coordinates.
	assert.Zero(t, annotated[1].DistanceMiles)
	assert.True(t, math.IsInf(annotated[2].DistanceMiles, 1))

	// Input slice is untouched.
	assert.True(t, math.IsInf(withCoords.DistanceMiles, 1))
}
