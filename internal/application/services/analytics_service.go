package services

import (
	"context"
	"time"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/observability"
)

const trackTimeout = 5 * time.Second

// SearchAnalyticsService records search events for later analysis.
// Tracking is best-effort and never blocks or fails a search.
type SearchAnalyticsService struct {
	events repositories.SearchEventRepository
}

// NewSearchAnalyticsService creates an analytics service.
func NewSearchAnalyticsService(events repositories.SearchEventRepository) *SearchAnalyticsService {
	return &SearchAnalyticsService{events: events}
}

// TrackSearch persists a search event asynchronously. The write gets its own
// context so it survives the request context being cancelled.
func (s *SearchAnalyticsService) TrackSearch(ctx context.Context, event *entities.SearchEvent) {
	logger := observability.LoggerFromContext(ctx)

	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		if err := s.events.LogEvent(writeCtx, event); err != nil {
			logger.Warn().Err(err).Str("query", event.Query).Msg("failed to record search event")
		}
	}()
}

// GetZeroResultQueries returns recent queries that produced no results,
// most frequent first.
func (s *SearchAnalyticsService) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.events.GetZeroResultQueries(ctx, limit)
}
