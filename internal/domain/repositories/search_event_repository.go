package repositories

import (
	"context"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
)

// SearchEventRepository stores search analytics events.
type SearchEventRepository interface {
	LogEvent(ctx context.Context, event *entities.SearchEvent) error
	GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error)
}
