package lookup

import (
	"portreg/internal/core/registry"
	perr "portreg/internal/platform/errors"
)

// Service answers lookups against a frozen registry table
type Service struct {
	table *registry.Table
}

// NewService returns a lookup service over table
func NewService(table *registry.Table) *Service {
	return &Service{table: table}
}

// Get resolves a single service/protocol pair. A miss comes back as an
// ErrorCodeUnknownService error naming both queried values
func (s *Service) Get(service, protocol string) (ServiceEntry, error) {
	ports, err := s.table.Lookup(service, protocol)
	if err != nil {
		return ServiceEntry{}, err
	}
	return ServiceEntry{Service: service, Protocol: protocol, Ports: ports}, nil
}

// Batch resolves every query independently. Misses do not fail the batch;
// each result carries its own error code instead
func (s *Service) Batch(req BatchRequest) (BatchResponse, error) {
	if len(req.Queries) > MaxBatch {
		return BatchResponse{}, perr.InvalidArgf("too many queries: %d > %d", len(req.Queries), MaxBatch)
	}
	out := BatchResponse{Results: make([]Result, 0, len(req.Queries))}
	for _, q := range req.Queries {
		res := Result{Service: q.Service, Protocol: q.Protocol}
		ports, err := s.table.Lookup(q.Service, q.Protocol)
		if err != nil {
			wr := perr.WireFrom(err)
			res.Code = wr.Code
			res.Error = wr.Message
		} else {
			res.Ports = ports
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
