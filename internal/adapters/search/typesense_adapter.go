package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	tsclient "github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements listing typeahead on Typesense.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.ListingSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the listings collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.ListingsCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: tsclient.ListingsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "service_type", Type: "string", Facet: pointer.True()},
			{Name: "state", Type: "string", Facet: pointer.True()},
			{Name: "zip_code", Type: "string"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a listing into the search index
func (a *TypesenseAdapter) Index(ctx context.Context, listing *entities.ServiceListing) error {
	document := map[string]interface{}{
		"id":           listing.ID,
		"name":         listing.Name,
		"service_type": listing.ServiceType,
		"state":        listing.State,
		"zip_code":     listing.ZipCode,
		"created_at":   listing.CreatedAt.Unix(),
	}

	if _, err := a.client.Client().Collection(tsclient.ListingsCollection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index listing: %w", err)
	}

	return nil
}

// Delete removes a listing from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(tsclient.ListingsCollection).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete listing from index: %w", err)
	}
	return nil
}

// Suggest returns listings whose names match the prefix text
func (a *TypesenseAdapter) Suggest(ctx context.Context, text string, limit int) ([]*entities.ServiceListing, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(text),
		QueryBy: pointer.String("name"),
		Prefix:  pointer.String("true"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.ListingsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	listings := []*entities.ServiceListing{}
	if result.Hits == nil {
		return listings, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		listing := &entities.ServiceListing{}
		if v, ok := doc["id"].(string); ok {
			listing.ID = v
		}
		if v, ok := doc["name"].(string); ok {
			listing.Name = v
		}
		if v, ok := doc["service_type"].(string); ok {
			listing.ServiceType = v
		}
		if v, ok := doc["state"].(string); ok {
			listing.State = v
		}
		if v, ok := doc["zip_code"].(string); ok {
			listing.ZipCode = v
		}
		if v, ok := doc["created_at"].(float64); ok {
			listing.CreatedAt = time.Unix(int64(v), 0)
		}
		listings = append(listings, listing)
	}

	return listings, nil
}
