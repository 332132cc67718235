package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gimmesomedew/pawdirectory/internal/adapters/cache"
	"github.com/gimmesomedew/pawdirectory/internal/adapters/database"
	"github.com/gimmesomedew/pawdirectory/internal/adapters/providers/geocoding"
	"github.com/gimmesomedew/pawdirectory/internal/adapters/search"
	"github.com/gimmesomedew/pawdirectory/internal/api/handlers"
	"github.com/gimmesomedew/pawdirectory/internal/api/middleware"
	"github.com/gimmesomedew/pawdirectory/internal/api/routes"
	"github.com/gimmesomedew/pawdirectory/internal/application/services"
	"github.com/gimmesomedew/pawdirectory/internal/domain/providers"
	"github.com/gimmesomedew/pawdirectory/internal/domain/repositories"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/postgres"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/redis"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/typesense"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/observability"
	"github.com/gimmesomedew/pawdirectory/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("pawdirectory-api", cfg.Server.Env)

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client; the application works without caching
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize Typesense client for name typeahead
	var searchRepo repositories.ListingSearchRepository
	if cfg.Typesense.Enabled {
		typesenseClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := adapter.InitSchema(context.Background()); err != nil {
				log.Printf("Warning: Failed to init Typesense schema: %v", err)
			}
			searchRepo = adapter
			log.Println("Typesense client initialized successfully")
		}
	}

	// Initialize adapters
	listingAdapter := database.NewListingAdapter(pgClient)
	productAdapter := database.NewProductAdapter(pgClient)
	categoryAdapter := database.NewCategoryAdapter(pgClient)
	searchEventAdapter := database.NewSearchEventAdapter(pgClient)

	var geocodingProvider providers.GeocodingProvider
	switch cfg.Geocoding.Provider {
	case "google":
		if cfg.Geocoding.APIKey == "" {
			log.Println("Warning: GEOCODING_API_KEY is not set; using mock geocoding provider")
			geocodingProvider = geocoding.NewMockGeocodingProvider()
		} else {
			geocodingProvider = geocoding.NewGoogleGeocodingProvider(cfg.Geocoding.APIKey, cacheProvider)
		}
	default:
		geocodingProvider = geocoding.NewMockGeocodingProvider()
	}

	// Initialize services
	parser := services.NewQueryParser(services.DefaultKeywordTable(), cfg.Search.DefaultRadiusMiles)
	matcher := services.NewCategoryMatcher()
	resolver := services.NewLocationResolver(listingAdapter, geocodingProvider)

	searchService := services.NewSearchService(
		listingAdapter,
		productAdapter,
		categoryAdapter,
		parser,
		matcher,
		resolver,
		cfg.Search.MaxResults,
	)

	analyticsService := services.NewSearchAnalyticsService(searchEventAdapter)
	searchService.SetAnalytics(analyticsService)
	searchService.SetMetrics(metrics)

	listingService := services.NewListingService(listingAdapter, searchRepo)
	productService := services.NewProductService(productAdapter)

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(searchService, listingService, analyticsService)
	listingHandler := handlers.NewListingHandler(listingService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryAdapter)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		searchHandler,
		listingHandler,
		productHandler,
		categoryHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
