// Package portpack reads and writes the compiled registry artifact.
// The JSON pack is the canonical output of portreg-compile and the input of
// the lookup API; a copy compiled from the well-known IANA assignments is
// embedded as the default pack
package portpack

import (
	_ "embed"
	"encoding/json"
	"os"

	"portreg/internal/core/registry"
	perr "portreg/internal/platform/errors"
)

// CurrentVersion is the artifact schema version this build reads and writes
const CurrentVersion = 1

// Meta carries input-derived facts about a compile run. Only deterministic
// fields belong here: identical input must yield identical artifact bytes
type Meta struct {
	Source  string `json:"source,omitempty"`
	Records int    `json:"records,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
}

type serviceJSON struct {
	Name     string   `json:"name"`
	Protocol string   `json:"protocol"`
	Ports    []uint16 `json:"ports"`
}

type fileJSON struct {
	Version  int           `json:"version"`
	Meta     Meta          `json:"meta"`
	Services []serviceJSON `json:"services"`
}

// Pack is a decoded artifact bound to its frozen lookup table
type Pack struct {
	Version int
	Meta    Meta
	Table   *registry.Table
}

//go:embed services.json
var embedded []byte

// Load parses the embedded default pack
func Load() (*Pack, error) { return Decode(embedded) }

// LoadFile parses a pack from disk
func LoadFile(path string) (*Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "read pack %s", path)
	}
	return Decode(b)
}

// Encode serializes a frozen table into artifact bytes. Services keep the
// table's first-seen key order and ports are already ascending, so the
// output is byte-stable for identical input
func Encode(t *registry.Table, meta Meta, pretty bool) ([]byte, error) {
	f := fileJSON{
		Version:  CurrentVersion,
		Meta:     meta,
		Services: make([]serviceJSON, 0, t.Len()),
	}
	for _, e := range t.Entries() {
		f.Services = append(f.Services, serviceJSON{
			Name:     e.Key.Name,
			Protocol: e.Key.Protocol,
			Ports:    e.Ports,
		})
	}

	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(f, "", "  ")
	} else {
		b, err = json.Marshal(f)
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode pack")
	}
	return append(b, '\n'), nil
}

// Decode parses artifact bytes, re-checks the table invariants, and returns
// the pack with its frozen table ready for lookups
func Decode(b []byte) (*Pack, error) {
	var f fileJSON
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "parse pack")
	}
	if f.Version != CurrentVersion {
		return nil, perr.InvalidArgf("unsupported pack version %d (want %d)", f.Version, CurrentVersion)
	}

	entries := make([]registry.Entry, 0, len(f.Services))
	for _, s := range f.Services {
		entries = append(entries, registry.Entry{
			Key:   registry.Key{Name: s.Name, Protocol: s.Protocol},
			Ports: s.Ports,
		})
	}
	table, err := registry.TableFromEntries(entries)
	if err != nil {
		return nil, err
	}
	return &Pack{Version: f.Version, Meta: f.Meta, Table: table}, nil
}
