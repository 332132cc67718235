package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

func newTestParser() *QueryParser {
	return NewQueryParser(DefaultKeywordTable(), 25)
}

func TestParseCategoryAndProximity(t *testing.T) {
	intent := newTestParser().Parse("groomers near me", nil)

	assert.Equal(t, "groomer", intent.ServiceType)
	assert.Equal(t, LocationNearMe, intent.LocationMode)
	assert.Empty(t, intent.LocationValue)
	assert.Equal(t, 25.0, intent.RadiusMiles)
}

func TestParseStateByFullName(t *testing.T) {
	intent := newTestParser().Parse("dog parks in Indiana", nil)

	assert.Equal(t, "dog_park", intent.ServiceType)
	assert.Equal(t, LocationState, intent.LocationMode)
	assert.Equal(t, "IN", intent.LocationValue)
}

func TestParsePostalCode(t *testing.T) {
	intent := newTestParser().Parse("vets in 46240", nil)

	assert.Equal(t, "veterinarian", intent.ServiceType)
	assert.Equal(t, LocationPostalRadius, intent.LocationMode)
	assert.Equal(t, "46240", intent.LocationValue)
	assert.Equal(t, 25.0, intent.RadiusMiles)
}

func TestParsePostalCodeBeatsState(t *testing.T) {
	intent := newTestParser().Parse("groomers in Indiana 46240", nil)

	assert.Equal(t, LocationPostalRadius, intent.LocationMode)
	assert.Equal(t, "46240", intent.LocationValue)
}

func TestParseProximityWordDeferredToState(t *testing.T) {
	// A bare proximity word loses to an explicit state mention.
	intent := newTestParser().Parse("groomers close to Indiana", nil)

	assert.Equal(t, LocationState, intent.LocationMode)
	assert.Equal(t, "IN", intent.LocationValue)
}

func TestParseProximityIdiomWithoutState(t *testing.T) {
	intent := newTestParser().Parse("trainers nearby", nil)

	assert.Equal(t, "trainer", intent.ServiceType)
	assert.Equal(t, LocationNearMe, intent.LocationMode)
}

func TestParseAmbiguousStateCodeIgnored(t *testing.T) {
	// "in" must not read as Indiana.
	intent := newTestParser().Parse("trainers in chicago", nil)

	assert.Equal(t, "trainer", intent.ServiceType)
	assert.Equal(t, LocationNone, intent.LocationMode)
}

func TestParseStateByCode(t *testing.T) {
	intent := newTestParser().Parse("boarding tx", nil)

	assert.Equal(t, "boarding", intent.ServiceType)
	assert.Equal(t, LocationState, intent.LocationMode)
	assert.Equal(t, "TX", intent.LocationValue)
}

func TestParseMultiWordStateName(t *testing.T) {
	intent := newTestParser().Parse("sitters in west virginia", nil)

	assert.Equal(t, LocationState, intent.LocationMode)
	assert.Equal(t, "WV", intent.LocationValue)
}

func TestParseEmptyQuery(t *testing.T) {
	intent := newTestParser().Parse("   ", nil)

	assert.Empty(t, intent.ServiceType)
	assert.Equal(t, LocationNone, intent.LocationMode)
}

func TestParseDynamicCategoriesWin(t *testing.T) {
	categories := []*entities.ServiceCategory{
		{ID: "aquatics", DisplayName: "Dog Swimming", Keywords: []string{"swim", "hydrotherapy"}},
		{ID: "groomer", DisplayName: "Groomers", Keywords: []string{"grooming"}},
	}

	intent := newTestParser().Parse("hydrotherapy in 46240", categories)
	assert.Equal(t, "aquatics", intent.ServiceType)
}

func TestParseDynamicCategoriesNoFallbackWhenPresent(t *testing.T) {
	// With a live category list, the static table stays out of the picture.
	categories := []*entities.ServiceCategory{
		{ID: "aquatics", DisplayName: "Dog Swimming", Keywords: []string{"swim"}},
	}

	intent := newTestParser().Parse("groomers near me", categories)
	assert.Empty(t, intent.ServiceType)
	assert.Equal(t, LocationNearMe, intent.LocationMode)
}

func TestParseNormalizesWhitespaceAndCase(t *testing.T) {
	intent := newTestParser().Parse("  GROOMERS   Near   ME  ", nil)

	assert.Equal(t, "groomer", intent.ServiceType)
	assert.Equal(t, LocationNearMe, intent.LocationMode)
}

func TestPatternRendering(t *testing.T) {
	intent := ParsedIntent{ServiceType: "groomer", LocationMode: LocationState, LocationValue: "IN"}
	assert.Equal(t, "service:groomer location:state:IN", intent.Pattern())

	intent = ParsedIntent{LocationMode: LocationNone}
	assert.Equal(t, "service:any location:none", intent.Pattern())
}
