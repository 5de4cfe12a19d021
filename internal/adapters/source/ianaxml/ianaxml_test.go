package ianaxml

import (
	"context"
	"strings"
	"testing"

	"portreg/internal/core/registry"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<registry xmlns="http://www.iana.org/assignments" id="service-names-port-numbers">
  <title>Service Name and Transport Protocol Port Number Registry</title>
  <record>
    <name>ssh</name>
    <protocol>tcp</protocol>
    <description>The Secure Shell (SSH) Protocol</description>
    <number>22</number>
  </record>
  <record>
    <name>blackjack</name>
    <protocol>tcp</protocol>
    <number>1025</number>
  </record>
  <record>
    <name>reserved-range</name>
    <protocol>udp</protocol>
    <number>1021-1022</number>
  </record>
  <record>
    <description>Unassigned</description>
    <number>1023</number>
  </record>
</registry>
`

func collect(t *testing.T, doc string) []registry.Record {
	t.Helper()
	var got []registry.Record
	err := New(strings.NewReader(doc)).Each(context.Background(), func(r registry.Record) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	return got
}

func TestEachYieldsAllRecords(t *testing.T) {
	got := collect(t, sampleDoc)
	want := []registry.Record{
		{Name: "ssh", Protocol: "tcp", PortSpec: "22"},
		{Name: "blackjack", Protocol: "tcp", PortSpec: "1025"},
		{Name: "reserved-range", Protocol: "udp", PortSpec: "1021-1022"},
		{Name: "", Protocol: "", PortSpec: "1023"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[3].Complete() {
		t.Fatalf("unassigned record should be incomplete")
	}
}

func TestEachWithoutNamespace(t *testing.T) {
	doc := `<registry><record><name>echo</name><protocol>udp</protocol><number>7</number></record></registry>`
	got := collect(t, doc)
	if len(got) != 1 || got[0] != (registry.Record{Name: "echo", Protocol: "udp", PortSpec: "7"}) {
		t.Fatalf("got %+v", got)
	}
}

func TestEachSkipsForeignNamespace(t *testing.T) {
	doc := `<registry xmlns="urn:example:other"><record><name>x</name><protocol>tcp</protocol><number>1</number></record></registry>`
	if got := collect(t, doc); len(got) != 0 {
		t.Fatalf("foreign-namespace records yielded: %+v", got)
	}
}

func TestEachStopsOnCallbackError(t *testing.T) {
	var n int
	err := New(strings.NewReader(sampleDoc)).Each(context.Background(), func(registry.Record) error {
		n++
		if n == 2 {
			return context.Canceled
		}
		return nil
	})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n != 2 {
		t.Fatalf("callback ran %d times, want 2", n)
	}
}

func TestEachFailsOnMalformedXML(t *testing.T) {
	err := New(strings.NewReader("<registry><record><name>x</name>")).Each(context.Background(), func(registry.Record) error {
		return nil
	})
	if err == nil {
		t.Fatalf("malformed document accepted")
	}
}

func TestEachHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(strings.NewReader(sampleDoc)).Each(ctx, func(registry.Record) error { return nil })
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
