package repositories

import (
	"context"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// ListingSearchRepository defines the optional search-index contract used
// for name typeahead (e.g. Typesense). Callers must tolerate a nil
// implementation.
type ListingSearchRepository interface {
	// Suggest returns listings whose names match the prefix text
	Suggest(ctx context.Context, text string, limit int) ([]*entities.ServiceListing, error)

	// Index upserts a listing into the search index
	Index(ctx context.Context, listing *entities.ServiceListing) error

	// Delete removes a listing from the index
	Delete(ctx context.Context, id string) error
}
