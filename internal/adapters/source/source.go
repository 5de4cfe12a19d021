// Package source defines the record source contract for the compiler.
// A source only extracts (name, protocol, port spec) triples; all
// normalization, validation, and skip decisions live in the registry
// builder, so the pipeline varies only at this extraction step
package source

import (
	"context"

	"portreg/internal/core/registry"
)

// Source yields raw registry records until end of input.
// Each stops early and returns the callback's error if fn fails
type Source interface {
	Each(ctx context.Context, fn func(registry.Record) error) error
}

// Slice is an in-memory Source, mainly for tests and fixtures
type Slice []registry.Record

// Each implements Source
func (s Slice) Each(ctx context.Context, fn func(registry.Record) error) error {
	for _, rec := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}
