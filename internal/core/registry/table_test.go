package registry

import (
	"strings"
	"testing"

	perr "portreg/internal/platform/errors"
)

func TestLookupUnknownIsStructuredFailure(t *testing.T) {
	b := NewBuilder()
	_ = b.Add(Record{Name: "ssh", Protocol: "tcp", PortSpec: "22"})
	tab := mustFreeze(t, b)

	ports, err := tab.Lookup("telnet", "tcp")
	if err == nil {
		t.Fatalf("expected lookup miss, got %v", ports)
	}
	if !perr.IsCode(err, perr.ErrorCodeUnknownService) {
		t.Fatalf("miss code = %v, want UnknownService", perr.CodeOf(err))
	}
	// the failure carries both queried values back to the caller
	if !strings.Contains(err.Error(), "telnet") || !strings.Contains(err.Error(), "tcp") {
		t.Fatalf("miss error %q does not carry the queried key", err.Error())
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"HTTP", "http"},
		{"  Ssh ", "ssh"},
		{"z39.50", "z39.50"},
		{"", ""},
		{"  ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTableFromEntriesRoundTrip(t *testing.T) {
	b := NewBuilder()
	_ = b.Add(Record{Name: "dns", Protocol: "udp", PortSpec: "53"})
	_ = b.Add(Record{Name: "dns", Protocol: "tcp", PortSpec: "53"})
	orig := mustFreeze(t, b)

	rebuilt, err := TableFromEntries(orig.Entries())
	if err != nil {
		t.Fatalf("TableFromEntries: %v", err)
	}
	if rebuilt.Len() != orig.Len() || rebuilt.PortCount() != orig.PortCount() {
		t.Fatalf("round trip mismatch: %d/%d vs %d/%d",
			rebuilt.Len(), rebuilt.PortCount(), orig.Len(), orig.PortCount())
	}
}

func TestTableFromEntriesRejectsBadArtifacts(t *testing.T) {
	cases := []struct {
		name    string
		entries []Entry
	}{
		{"empty key", []Entry{{Key: Key{Name: "", Protocol: "tcp"}, Ports: []uint16{1}}}},
		{"no ports", []Entry{{Key: Key{Name: "x", Protocol: "tcp"}}}},
		{"unsorted", []Entry{{Key: Key{Name: "x", Protocol: "tcp"}, Ports: []uint16{2, 1}}}},
		{"duplicate port", []Entry{{Key: Key{Name: "x", Protocol: "tcp"}, Ports: []uint16{1, 1}}}},
		{"duplicate key", []Entry{
			{Key: Key{Name: "x", Protocol: "tcp"}, Ports: []uint16{1}},
			{Key: Key{Name: "X", Protocol: "TCP"}, Ports: []uint16{2}},
		}},
	}
	for _, c := range cases {
		if _, err := TableFromEntries(c.entries); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}
