package entities

import (
	"time"
)

// Product represents a pet product listing (supplements, food, gear) sold by
// a local vendor. Unlike service listings, a product can belong to several
// categories at once.
type Product struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description,omitempty" db:"description"`
	Categories  []string     `json:"categories" db:"-"`
	VendorName  string       `json:"vendor_name,omitempty" db:"vendor_name"`
	Price       float64      `json:"price,omitempty" db:"price"`
	State       string       `json:"state,omitempty" db:"state"`
	ZipCode     string       `json:"zip_code,omitempty" db:"zip_code"`
	Location    *Coordinates `json:"location,omitempty" db:"-"`
	IsActive    bool         `json:"is_active" db:"is_active"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
