package svcfile

import (
	"context"
	"strings"
	"testing"

	"portreg/internal/core/registry"
)

const sample = `# Network services, Internet style
#
ftp-data	20/tcp
ftp		21/tcp
ssh		22/tcp		# SSH Remote Login Protocol
domain		53/udp		nameserver
http		80/tcp		www		# WorldWideWeb HTTP

bogus-line
half	1234
`

func collect(t *testing.T, in string) []registry.Record {
	t.Helper()
	var got []registry.Record
	err := New(strings.NewReader(in)).Each(context.Background(), func(r registry.Record) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	return got
}

func TestEachParsesServicesLines(t *testing.T) {
	got := collect(t, sample)
	want := []registry.Record{
		{Name: "ftp-data", Protocol: "tcp", PortSpec: "20"},
		{Name: "ftp", Protocol: "tcp", PortSpec: "21"},
		{Name: "ssh", Protocol: "tcp", PortSpec: "22"},
		{Name: "domain", Protocol: "udp", PortSpec: "53"},
		{Name: "http", Protocol: "tcp", PortSpec: "80"},
		{Name: "bogus-line"},
		{Name: "half", PortSpec: "1234"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[5].Complete() || got[6].Complete() {
		t.Fatalf("malformed lines should come out incomplete")
	}
}

func TestEachSkipsCommentAndBlankLines(t *testing.T) {
	if got := collect(t, "# only\n\n   \n# comments\n"); len(got) != 0 {
		t.Fatalf("comment-only input yielded %+v", got)
	}
}

func TestEachStopsOnCallbackError(t *testing.T) {
	var n int
	err := New(strings.NewReader(sample)).Each(context.Background(), func(registry.Record) error {
		n++
		return context.Canceled
	})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n != 1 {
		t.Fatalf("callback ran %d times, want 1", n)
	}
}

func TestEachHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(strings.NewReader(sample)).Each(ctx, func(registry.Record) error { return nil })
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
