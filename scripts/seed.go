package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gimmesomedew/pawdirectory/internal/adapters/database"
	"github.com/gimmesomedew/pawdirectory/internal/adapters/search"
	"github.com/gimmesomedew/pawdirectory/internal/domain/entities"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/postgres"
	"github.com/gimmesomedew/pawdirectory/internal/infrastructure/clients/typesense"
	"github.com/gimmesomedew/pawdirectory/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchRepo *search.TypesenseAdapter
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err == nil {
			searchRepo = search.NewTypesenseAdapter(tsClient)
			if err := searchRepo.InitSchema(context.Background()); err != nil {
				log.Printf("Failed to init Typesense schema: %v", err)
			}
		}
	}

	listingRepo := database.NewListingAdapter(pgClient)
	productRepo := database.NewProductAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				search_events,
				products,
				listings,
				product_categories,
				service_categories
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed service categories
	serviceCategories := []entities.ServiceCategory{
		{ID: "groomer", DisplayName: "Groomers", Keywords: []string{"groomer", "groomers", "grooming"}},
		{ID: "veterinarian", DisplayName: "Veterinarians", Keywords: []string{"vet", "vets", "veterinary", "veterinarian"}},
		{ID: "dog_park", DisplayName: "Dog Parks", Keywords: []string{"dog park", "dog parks", "bark park"}},
		{ID: "trainer", DisplayName: "Trainers", Keywords: []string{"trainer", "trainers", "training", "obedience"}},
		{ID: "boarding", DisplayName: "Boarding", Keywords: []string{"boarding", "kennel", "daycare"}},
		{ID: "sitter", DisplayName: "Pet Sitters", Keywords: []string{"sitter", "sitters", "pet sitting", "dog walker"}},
	}
	for _, c := range serviceCategories {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO service_categories (id, display_name, keywords)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING
		`, c.ID, c.DisplayName, pq.Array(c.Keywords))
		if err != nil {
			log.Printf("Failed to create service category %s: %v", c.ID, err)
		}
	}

	// 2. Seed product categories
	productCategories := []entities.ProductCategory{
		{ID: "food", Name: "Dog Food", Description: "kibble, wet food and raw diets"},
		{ID: "supplements", Name: "Joint Supplements", Description: "mobility and joint health"},
		{ID: "grooming", Name: "Grooming Products", Description: "shampoos, brushes and clippers"},
		{ID: "toys", Name: "Toys", Description: "chew toys, fetch toys and puzzles"},
		{ID: "treats", Name: "Training Treats", Description: "treats for training and rewards"},
	}
	for _, c := range productCategories {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO product_categories (id, name, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING
		`, c.ID, c.Name, c.Description)
		if err != nil {
			log.Printf("Failed to create product category %s: %v", c.ID, err)
		}
	}

	// 3. Seed listings around the Indianapolis metro
	now := time.Now().UTC()
	listings := []entities.ServiceListing{
		{Name: "Wagging Tails Grooming", ServiceType: "groomer", Address: "1200 Broad Ripple Ave", City: "Indianapolis", State: "IN", ZipCode: "46220", Location: &entities.Coordinates{Latitude: 39.8702, Longitude: -86.1419}},
		{Name: "Carmel Pet Spa", ServiceType: "groomer", Address: "14 W Main St", City: "Carmel", State: "IN", ZipCode: "46032", Location: &entities.Coordinates{Latitude: 39.9784, Longitude: -86.1280}},
		{Name: "Northside Veterinary Clinic", ServiceType: "veterinarian", Address: "8602 Keystone Crossing", City: "Indianapolis", State: "IN", ZipCode: "46240", Location: &entities.Coordinates{Latitude: 39.9064, Longitude: -86.1220}},
		{Name: "Broad Ripple Bark Park", ServiceType: "dog_park", Address: "1550 Broad Ripple Ave", City: "Indianapolis", State: "IN", ZipCode: "46220", Location: &entities.Coordinates{Latitude: 39.8715, Longitude: -86.1367}},
		{Name: "Good Dog Training Academy", ServiceType: "trainer", Address: "5750 E 91st St", City: "Indianapolis", State: "IN", ZipCode: "46250", Location: &entities.Coordinates{Latitude: 39.9242, Longitude: -86.0620}},
		{Name: "Happy Paws Boarding", ServiceType: "boarding", Address: "9801 Fall Creek Rd", City: "Indianapolis", State: "IN", ZipCode: "46256", Location: &entities.Coordinates{Latitude: 39.8925, Longitude: -86.0110}},
		{Name: "Windy City Groomers", ServiceType: "groomer", Address: "2100 N Clark St", City: "Chicago", State: "IL", ZipCode: "60614", Location: &entities.Coordinates{Latitude: 41.9217, Longitude: -87.6368}},
	}
	for i := range listings {
		l := &listings[i]
		l.ID = uuid.New().String()
		l.Status = entities.ListingStatusApproved
		l.CreatedAt = now
		l.UpdatedAt = now
		if err := listingRepo.Create(ctx, l); err != nil {
			log.Printf("Failed to create listing %s: %v", l.Name, err)
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.Index(ctx, l); err != nil {
				log.Printf("Failed to index listing %s: %v", l.Name, err)
			}
		}
	}

	// 4. Seed products
	products := []entities.Product{
		{Name: "Salmon & Sweet Potato Kibble", Description: "grain free dry dog food", Categories: []string{"food"}, VendorName: "Hoosier Pet Supply", Price: 54.99, State: "IN", ZipCode: "46240", Location: &entities.Coordinates{Latitude: 39.9064, Longitude: -86.1220}},
		{Name: "Hip and Joint Chews", Description: "glucosamine chews for senior dogs", Categories: []string{"supplements", "treats"}, VendorName: "Hoosier Pet Supply", Price: 29.99, State: "IN", ZipCode: "46240", Location: &entities.Coordinates{Latitude: 39.9064, Longitude: -86.1220}},
		{Name: "Oatmeal Dog Shampoo", Description: "gentle shampoo for sensitive skin", Categories: []string{"grooming"}, VendorName: "Carmel Pet Goods", Price: 12.50, State: "IN", ZipCode: "46032", Location: &entities.Coordinates{Latitude: 39.9784, Longitude: -86.1280}},
		{Name: "Rope Tug Toy", Description: "durable cotton tug toy", Categories: []string{"toys"}, VendorName: "Windy City Pets", Price: 9.99, State: "IL", ZipCode: "60614", Location: &entities.Coordinates{Latitude: 41.9217, Longitude: -87.6368}},
	}
	for i := range products {
		p := &products[i]
		p.ID = uuid.New().String()
		p.IsActive = true
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := productRepo.Create(ctx, p); err != nil {
			log.Printf("Failed to create product %s: %v", p.Name, err)
		}
	}

	log.Printf("Seed complete: %d categories, %d listings, %d products",
		len(serviceCategories)+len(productCategories), len(listings), len(products))
}
