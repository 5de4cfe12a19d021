// Package registry implements the service-name registry compiler: raw
// records in, one deterministic (service, protocol) -> ports table out.
// The pipeline is linear and single-pass: records are normalized and
// validated as they arrive, merged into per-key port sets, and frozen once
// into an immutable lookup table
package registry

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Record is one raw registry entry as extracted by a source adapter.
// PortSpec is either a decimal number or two decimal numbers joined by a dash
type Record struct {
	Name     string
	Protocol string
	PortSpec string
}

// Complete reports whether the record carries all three required fields
func (r Record) Complete() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Protocol) != "" &&
		strings.TrimSpace(r.PortSpec) != ""
}

// Key identifies one service entry. Both fields hold normalized
// (case-folded) text; build keys with KeyOf, never with raw input
type Key struct {
	Name     string `json:"name"`
	Protocol string `json:"protocol"`
}

// KeyOf normalizes name and protocol and returns the grouping key
func KeyOf(name, protocol string) Key {
	return Key{Name: Normalize(name), Protocol: Normalize(protocol)}
}

// pool of fresh transformer chains; order mirrors the normalize pipeline:
// NFKC, Unicode case folding, width folding
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			width.Fold,
		)
	},
}

// Normalize case-folds s for case-insensitive identity. Applied exactly once
// per field, at ingestion, and once per query term at lookup time
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// fold failures only happen on broken input; fall back to a plain lower
		return strings.ToLower(s)
	}
	return ns
}
