package entities

import (
	"time"
)

// ListingStatus tracks the moderation state of a submitted listing.
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// ServiceListing represents a local pet-service listing (groomer, vet,
// dog park, trainer, boarding, sitter).
type ServiceListing struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description,omitempty" db:"description"`
	ServiceType string        `json:"service_type" db:"service_type"`
	Address     string        `json:"address,omitempty" db:"address"`
	City        string        `json:"city,omitempty" db:"city"`
	State       string        `json:"state" db:"state"`
	ZipCode     string        `json:"zip_code" db:"zip_code"`
	Location    *Coordinates  `json:"location,omitempty" db:"-"`
	Phone       string        `json:"phone,omitempty" db:"phone"`
	Website     string        `json:"website,omitempty" db:"website"`
	Status      ListingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// Coordinates represents geographical coordinates.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
