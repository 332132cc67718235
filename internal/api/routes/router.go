package routes

import (
	"net/http"

	"github.com/gimmesomedew/pawdirectory/internal/api/handlers"
	"github.com/gimmesomedew/pawdirectory/internal/api/middleware"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler   *handlers.SearchHandler
	listingHandler  *handlers.ListingHandler
	productHandler  *handlers.ProductHandler
	categoryHandler *handlers.CategoryHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	listingHandler *handlers.ListingHandler,
	productHandler *handlers.ProductHandler,
	categoryHandler *handlers.CategoryHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		searchHandler:   searchHandler,
		listingHandler:  listingHandler,
		productHandler:  productHandler,
		categoryHandler: categoryHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Search endpoints
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("POST /api/search", r.searchHandler.SearchPost)
	r.mux.HandleFunc("GET /api/search/suggest", r.searchHandler.Suggest)
	r.mux.HandleFunc("GET /api/search/zero-results", r.searchHandler.ZeroResultQueries)

	// Listing endpoints
	r.mux.HandleFunc("GET /api/listings", r.listingHandler.ListListings)
	r.mux.HandleFunc("POST /api/listings", r.listingHandler.CreateListing)
	r.mux.HandleFunc("GET /api/listings/{id}", r.listingHandler.GetListing)

	// Product endpoints
	r.mux.HandleFunc("GET /api/products", r.productHandler.ListProducts)
	r.mux.HandleFunc("POST /api/products", r.productHandler.CreateProduct)
	r.mux.HandleFunc("GET /api/products/{id}", r.productHandler.GetProduct)

	// Taxonomy endpoints
	r.mux.HandleFunc("GET /api/categories/services", r.categoryHandler.ListServiceCategories)
	r.mux.HandleFunc("GET /api/categories/products", r.categoryHandler.ListProductCategories)

	// Apply middleware in reverse order (last middleware wraps first).
	var handler http.Handler = r.mux
	handler = middleware.RequestLogging(r.metrics)(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORS(handler)

	return handler
}
