package registry

import (
	"slices"

	perr "portreg/internal/platform/errors"
)

// Stats counts what a compile run consumed
type Stats struct {
	Seen    int // records offered to the builder
	Skipped int // incomplete records dropped per the parser contract
	Ports   int // expanded ports accumulated (before per-key dedupe)
}

// Builder accumulates records into per-key port sets. It is the single
// sequential consumer of a compile run; not safe for concurrent use.
// Freeze finishes the run and hands off an immutable Table
type Builder struct {
	order  []Key
	sets   map[Key]map[uint16]struct{}
	stats  Stats
	frozen bool
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder {
	return &Builder{sets: make(map[Key]map[uint16]struct{})}
}

// Add normalizes, validates, and merges one raw record.
// Incomplete records (missing name, protocol, or port spec) are counted and
// dropped, not errors: the registry legitimately contains entries that carry
// no port assignment. A malformed port spec or port literal is fatal and
// aborts the whole compile
func (b *Builder) Add(rec Record) error {
	if b.frozen {
		return perr.Internalf("builder is frozen; compile runs are single-pass")
	}
	b.stats.Seen++

	if !rec.Complete() {
		b.stats.Skipped++
		return nil
	}

	ports, err := ParsePortSpec(rec.PortSpec)
	if err != nil {
		return err
	}

	key := KeyOf(rec.Name, rec.Protocol)
	set, ok := b.sets[key]
	if !ok {
		set = make(map[uint16]struct{}, len(ports))
		b.sets[key] = set
		b.order = append(b.order, key)
	}
	for _, p := range ports {
		set[p] = struct{}{}
	}
	b.stats.Ports += len(ports)
	return nil
}

// Stats returns the counters for the run so far
func (b *Builder) Stats() Stats { return b.stats }

// Freeze converts every port set into a sorted ascending slice and returns
// the immutable table. One-shot: the builder rejects further Add and Freeze
// calls afterward, so a table can never be half-finalized
func (b *Builder) Freeze() (*Table, error) {
	if b.frozen {
		return nil, perr.Internalf("builder already frozen")
	}
	b.frozen = true

	t := &Table{
		entries: make([]Entry, 0, len(b.order)),
		index:   make(map[Key]int, len(b.order)),
	}
	for _, key := range b.order {
		set := b.sets[key]
		ports := make([]uint16, 0, len(set))
		for p := range set {
			ports = append(ports, p)
		}
		slices.Sort(ports)
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, Entry{Key: key, Ports: ports})
	}
	return t, nil
}
