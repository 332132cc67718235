package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateMarshalOmitsUnknownDistance(t *testing.T) {
	c := NewServiceCandidate(&ServiceListing{Name: "Wagging Tails"})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	_, present := decoded["distance_miles"]
	assert.False(t, present)
	assert.Equal(t, "service", decoded["kind"])
}

func TestCandidateMarshalIncludesKnownDistance(t *testing.T) {
	c := NewServiceCandidate(&ServiceListing{Name: "Wagging Tails"})
	c.DistanceMiles = 3.25

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3.25, decoded["distance_miles"])
}

func TestCandidateAccessorsByKind(t *testing.T) {
	service := NewServiceCandidate(&ServiceListing{
		Name:     "Wagging Tails",
		ZipCode:  "46240",
		Location: &Coordinates{Latitude: 39.9, Longitude: -86.1},
	})
	product := NewProductCandidate(&Product{Name: "Dog Shampoo", ZipCode: "46032"})

	assert.Equal(t, "Wagging Tails", service.Name())
	assert.Equal(t, "46240", service.ZipCode())
	require.NotNil(t, service.Location())

	assert.Equal(t, "Dog Shampoo", product.Name())
	assert.Equal(t, "46032", product.ZipCode())
	assert.Nil(t, product.Location())
}
