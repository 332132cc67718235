package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

func TestProductSignalExplicitMention(t *testing.T) {
	matcher := NewCategoryMatcher()

	assert.True(t, matcher.ProductSignal("dog products near me", nil))
	assert.True(t, matcher.ProductSignal("best product for fleas", nil))
	assert.False(t, matcher.ProductSignal("productive training sessions", nil))
}

func TestProductSignalCategoryOverlap(t *testing.T) {
	matcher := NewCategoryMatcher()
	categories := []*entities.ProductCategory{
		{ID: "supplements", Name: "Joint Supplements", Description: "mobility and joint health"},
		{ID: "food", Name: "Dog Food", Description: "kibble and wet food"},
	}

	// Query contained in category name.
	assert.True(t, matcher.ProductSignal("supplements", categories))
	// Category name contained in query.
	assert.True(t, matcher.ProductSignal("joint supplements for senior dogs", categories))
	// Description overlap.
	assert.True(t, matcher.ProductSignal("kibble and wet food", categories))

	assert.False(t, matcher.ProductSignal("groomers in Indiana", categories))
}

func TestProductSignalEmptyQuery(t *testing.T) {
	matcher := NewCategoryMatcher()

	assert.False(t, matcher.ProductSignal("", nil))
	assert.False(t, matcher.ProductSignal("   ", nil))
}
