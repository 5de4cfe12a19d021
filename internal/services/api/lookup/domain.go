// Package lookup serves port lookups against a compiled registry table
package lookup

import perr "portreg/internal/platform/errors"

// MaxBatch caps the number of queries accepted in one batch request
const MaxBatch = 100

// Query is one service/protocol pair to resolve
type Query struct {
	Service  string `json:"service" validate:"required,max=255"`
	Protocol string `json:"protocol" validate:"required,max=64"`
}

// BatchRequest is the body of POST /services/lookup
type BatchRequest struct {
	Queries []Query `json:"queries" validate:"required,min=1,max=100,dive"`
}

// Result is the outcome of a single query. Exactly one of Ports or
// Error/Code is set; Service and Protocol always echo the queried values
type Result struct {
	Service  string         `json:"service"`
	Protocol string         `json:"protocol"`
	Ports    []uint16       `json:"ports,omitempty"`
	Code     perr.ErrorCode `json:"code,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// BatchResponse is the body of a successful batch lookup
type BatchResponse struct {
	Results []Result `json:"results"`
}

// ServiceEntry is one table row as exposed on the single-pair endpoint
type ServiceEntry struct {
	Service  string   `json:"service"`
	Protocol string   `json:"protocol"`
	Ports    []uint16 `json:"ports"`
}
