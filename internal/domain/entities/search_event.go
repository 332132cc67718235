package entities

import (
	"time"
)

// SearchEvent records a single search interaction for analytics.
type SearchEvent struct {
	ID            string    `json:"id" db:"id"`
	Query         string    `json:"query" db:"query"`
	ServiceType   string    `json:"service_type,omitempty" db:"service_type"`
	LocationMode  string    `json:"location_mode,omitempty" db:"location_mode"`
	LocationValue string    `json:"location_value,omitempty" db:"location_value"`
	ResultCount   int       `json:"result_count" db:"result_count"`
	LatencyMs     int       `json:"latency_ms" db:"latency_ms"`
	UserLatitude  float64   `json:"user_latitude,omitempty" db:"user_latitude"`
	UserLongitude float64   `json:"user_longitude,omitempty" db:"user_longitude"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
