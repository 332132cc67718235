package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gimmesomedew/pawdirectory/internal/adapters/database"
	"github.com/gimmesomedew/pawdirectory/internal/adapters/search"
	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/postgres"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/typesense"
	"github.com/gimmesomedew/pawdirectory/pkg/config"
)

const reindexBatchLimit = 1000

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	listingRepo := database.NewListingAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting listings collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.ListingsCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	indexed := 0
	offset := 0
	for {
		listings, err := listingRepo.List(ctx, repositories.ListingFilter{
			Status: entities.ListingStatusApproved,
			Limit:  reindexBatchLimit,
			Offset: offset,
		})
		if err != nil {
			return err
		}
		if len(listings) == 0 {
			break
		}

		for _, listing := range listings {
			if listing == nil {
				continue
			}
			if err := adapter.Index(ctx, listing); err != nil {
				log.Printf("Failed to index listing %s: %v", listing.ID, err)
				continue
			}
			indexed++
		}

		if len(listings) < reindexBatchLimit {
			break
		}
		offset += reindexBatchLimit
	}

	log.Printf("Indexing complete. %d listings indexed.", indexed)
	return nil
}
