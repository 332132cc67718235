package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/observability"
	apperrors "github.com/gimmesomedew/pawdirectory/pkg/errors"
)

// ListingService manages the service-listing directory: submissions,
// lookups, and the optional typeahead index.
type ListingService struct {
	listings repositories.ListingRepository
	search   repositories.ListingSearchRepository
}

// NewListingService creates a listing service. search may be nil when no
// search index is configured.
func NewListingService(listings repositories.ListingRepository, search repositories.ListingSearchRepository) *ListingService {
	return &ListingService{listings: listings, search: search}
}

// Create validates and stores a submitted listing. New submissions start in
// pending status and are excluded from search until approved.
func (s *ListingService) Create(ctx context.Context, listing *entities.ServiceListing) (*entities.ServiceListing, error) {
	if err := validateListing(listing); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing.ID = uuid.New().String()
	listing.Status = entities.ListingStatusPending
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.Index(ctx, listing); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("listing_id", listing.ID).
				Msg("failed to index listing")
		}
	}

	return listing, nil
}

// GetByID returns a listing by its identifier.
func (s *ListingService) GetByID(ctx context.Context, id string) (*entities.ServiceListing, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("listing id is required")
	}
	return s.listings.GetByID(ctx, id)
}

// List returns listings matching the filter.
func (s *ListingService) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.ServiceListing, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.listings.List(ctx, filter)
}

// Suggest returns up to limit listing names matching the prefix text.
// Returns an empty slice when no search index is configured.
func (s *ListingService) Suggest(ctx context.Context, text string, limit int) ([]*entities.ServiceListing, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("suggest text is required")
	}
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	if s.search == nil {
		return []*entities.ServiceListing{}, nil
	}
	return s.search.Suggest(ctx, text, limit)
}

func validateListing(listing *entities.ServiceListing) error {
	if listing == nil {
		return apperrors.NewValidationError("listing is required")
	}
	if strings.TrimSpace(listing.Name) == "" {
		return apperrors.NewValidationError("listing name is required")
	}
	if strings.TrimSpace(listing.ServiceType) == "" {
		return apperrors.NewValidationError("service type is required")
	}
	if strings.TrimSpace(listing.State) == "" {
		return apperrors.NewValidationError("state is required")
	}
	return nil
}
