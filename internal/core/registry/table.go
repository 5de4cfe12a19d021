package registry

import (
	"slices"

	perr "portreg/internal/platform/errors"
)

// Entry associates one key with its final, ascending, duplicate-free ports
type Entry struct {
	Key   Key
	Ports []uint16
}

// Table is the frozen lookup table produced by a compile run. Entries keep
// the order their keys were first seen in; ports within an entry are sorted.
// Read-only after Freeze, so it is safe for concurrent lookups
type Table struct {
	entries []Entry
	index   map[Key]int
}

// Len returns the number of (service, protocol) entries
func (t *Table) Len() int { return len(t.entries) }

// PortCount returns the total number of ports across all entries
func (t *Table) PortCount() int {
	n := 0
	for _, e := range t.entries {
		n += len(e.Ports)
	}
	return n
}

// Entries returns the entries in first-seen key order. Callers must not
// mutate the returned slices
func (t *Table) Entries() []Entry { return t.entries }

// Lookup resolves a (service, protocol) query, case-insensitively.
// A miss is an explicit ErrorCodeUnknownService failure naming both queried
// values, never an empty result
func (t *Table) Lookup(service, protocol string) ([]uint16, error) {
	if e, ok := t.Get(KeyOf(service, protocol)); ok {
		return e.Ports, nil
	}
	return nil, perr.UnknownServicef(
		"unknown service/protocol combination %q/%q", service, protocol)
}

// Get returns the entry for an already-normalized key
func (t *Table) Get(key Key) (Entry, bool) {
	if i, ok := t.index[key]; ok {
		return t.entries[i], true
	}
	return Entry{}, false
}

// TableFromEntries rebuilds a frozen table from decoded artifact entries,
// re-checking the invariants a well-formed artifact already satisfies:
// normalized keys, no duplicate keys, strictly ascending ports
func TableFromEntries(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[Key]int, len(entries)),
	}
	for _, e := range entries {
		key := KeyOf(e.Key.Name, e.Key.Protocol)
		if key.Name == "" || key.Protocol == "" {
			return nil, perr.InvalidArgf("entry with empty service or protocol")
		}
		if _, dup := t.index[key]; dup {
			return nil, perr.InvalidArgf("duplicate entry for %s/%s", key.Name, key.Protocol)
		}
		if len(e.Ports) == 0 {
			return nil, perr.InvalidArgf("entry %s/%s has no ports", key.Name, key.Protocol)
		}
		ports := slices.Clone(e.Ports)
		for i := 1; i < len(ports); i++ {
			if ports[i-1] >= ports[i] {
				return nil, perr.InvalidArgf(
					"entry %s/%s ports not strictly ascending", key.Name, key.Protocol)
			}
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, Entry{Key: key, Ports: ports})
	}
	return t, nil
}
