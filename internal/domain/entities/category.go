package entities

// ServiceCategory describes one entry of the service taxonomy. Keywords are
// alternate spellings and word forms users type for the category ("groomer"
// also matches "grooming").
type ServiceCategory struct {
	ID          string   `json:"id" db:"id"`
	DisplayName string   `json:"display_name" db:"display_name"`
	Keywords    []string `json:"keywords" db:"-"`
}

// ProductCategory describes one entry of the product taxonomy. Products and
// services have independent taxonomies.
type ProductCategory struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}
