package services

import (
	"sort"
	"strings"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// minRelevanceScore is the cutoff below which a product is treated as a
// non-match and dropped entirely.
const minRelevanceScore = 5

// ScoreProducts computes text relevance for product candidates fetched
// without a category filter, discards non-matches, and orders the rest by
// descending score. Ties keep fetch order. Non-product candidates are
// passed through unchanged by position; the returned slice is new and the
// input is not mutated.
func ScoreProducts(candidates []entities.Candidate, query string) []entities.Candidate {
	normalized := normalizeQuery(query)
	words := scoringWords(normalized)

	scored := make([]entities.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Kind != entities.CandidateProduct {
			scored = append(scored, c)
			continue
		}
		c.RelevanceScore = scoreProduct(c.Product, normalized, words)
		if c.RelevanceScore < minRelevanceScore {
			continue
		}
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	return scored
}

func scoreProduct(product *entities.Product, normalizedQuery string, words []string) int {
	name := strings.ToLower(product.Name)
	description := strings.ToLower(product.Description)
	categories := strings.ToLower(strings.Join(product.Categories, " "))
	haystack := name + " " + description + " " + categories

	score := 0
	if normalizedQuery != "" && strings.Contains(name, normalizedQuery) {
		score += 100
	}
	for _, word := range words {
		if strings.Contains(haystack, word) {
			score += 10
		}
		for _, category := range product.Categories {
			if strings.Contains(strings.ToLower(category), word) {
				score += 15
				break
			}
		}
	}
	return score
}

// scoringWords returns query words longer than two characters.
func scoringWords(normalized string) []string {
	var words []string
	for _, w := range strings.Fields(normalized) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}
