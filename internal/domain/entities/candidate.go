package entities

import (
	"encoding/json"
	"math"
)

// CandidateKind discriminates the two candidate shapes.
type CandidateKind string

const (
	CandidateService CandidateKind = "service"
	CandidateProduct CandidateKind = "product"
)

// Candidate is a tagged union over the two record collections. The Kind tag
// is set once at fetch time; downstream stages switch on it instead of
// probing fields. Annotations (distance, exact match, relevance) are filled
// by pure pipeline stages that return new Candidate values.
type Candidate struct {
	Kind    CandidateKind
	Service *ServiceListing
	Product *Product

	// DistanceMiles is a finite non-negative number, or +Inf when the
	// candidate has no usable coordinates. Zero before annotation only
	// for exact postal matches.
	DistanceMiles        float64
	IsExactLocationMatch bool

	// RelevanceScore is computed for product candidates only, and only
	// when the query triggered a product search.
	RelevanceScore int
}

// NewServiceCandidate wraps a service listing with an unknown distance.
func NewServiceCandidate(listing *ServiceListing) Candidate {
	return Candidate{Kind: CandidateService, Service: listing, DistanceMiles: math.Inf(1)}
}

// NewProductCandidate wraps a product with an unknown distance.
func NewProductCandidate(product *Product) Candidate {
	return Candidate{Kind: CandidateProduct, Product: product, DistanceMiles: math.Inf(1)}
}

// Name returns the display name of the underlying record.
func (c Candidate) Name() string {
	switch c.Kind {
	case CandidateService:
		return c.Service.Name
	case CandidateProduct:
		return c.Product.Name
	}
	return ""
}

// Location returns the underlying record's coordinates, or nil when unknown.
func (c Candidate) Location() *Coordinates {
	switch c.Kind {
	case CandidateService:
		return c.Service.Location
	case CandidateProduct:
		return c.Product.Location
	}
	return nil
}

// ZipCode returns the underlying record's postal code.
func (c Candidate) ZipCode() string {
	switch c.Kind {
	case CandidateService:
		return c.Service.ZipCode
	case CandidateProduct:
		return c.Product.ZipCode
	}
	return ""
}

type candidateJSON struct {
	Kind                 CandidateKind   `json:"kind"`
	Service              *ServiceListing `json:"service,omitempty"`
	Product              *Product        `json:"product,omitempty"`
	DistanceMiles        *float64        `json:"distance_miles,omitempty"`
	IsExactLocationMatch bool            `json:"is_exact_location_match"`
	RelevanceScore       int             `json:"relevance_score,omitempty"`
}

// MarshalJSON omits the distance field when it is the +Inf sentinel, since
// infinity has no JSON representation.
func (c Candidate) MarshalJSON() ([]byte, error) {
	out := candidateJSON{
		Kind:                 c.Kind,
		Service:              c.Service,
		Product:              c.Product,
		IsExactLocationMatch: c.IsExactLocationMatch,
		RelevanceScore:       c.RelevanceScore,
	}
	if !math.IsInf(c.DistanceMiles, 1) {
		d := c.DistanceMiles
		out.DistanceMiles = &d
	}
	return json.Marshal(out)
}
