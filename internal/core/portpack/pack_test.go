package portpack

import (
	"bytes"
	"strings"
	"testing"

	"portreg/internal/core/registry"
	perr "portreg/internal/platform/errors"
)

func buildTable(t *testing.T) *registry.Table {
	t.Helper()
	b := registry.NewBuilder()
	recs := []registry.Record{
		{Name: "foo", Protocol: "tcp", PortSpec: "10"},
		{Name: "foo", Protocol: "tcp", PortSpec: "8-9"},
		{Name: "bar", Protocol: "udp", PortSpec: "10"},
	}
	for _, r := range recs {
		if err := b.Add(r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	tab, err := b.Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	return tab
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tab := buildTable(t)
	meta := Meta{Source: "test", Records: 3}

	enc, err := Encode(tab, meta, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Version != CurrentVersion || p.Meta.Source != "test" || p.Meta.Records != 3 {
		t.Fatalf("decoded header mismatch: %+v", p)
	}
	if p.Table.Len() != 2 {
		t.Fatalf("decoded table len = %d", p.Table.Len())
	}
	ports, err := p.Table.Lookup("foo", "tcp")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(ports) != 3 || ports[0] != 8 || ports[2] != 10 {
		t.Fatalf("foo/tcp = %v", ports)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	meta := Meta{Source: "test"}
	a, err := Encode(buildTable(t), meta, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(buildTable(t), meta, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("identical input produced different artifact bytes")
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, err := Decode([]byte("{")); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("truncated JSON code = %v", perr.CodeOf(err))
	}
	if _, err := Decode([]byte(`{"version":99,"services":[]}`)); err == nil {
		t.Fatalf("unsupported version accepted")
	}
	bad := `{"version":1,"services":[{"name":"x","protocol":"tcp","ports":[2,1]}]}`
	if _, err := Decode([]byte(bad)); err == nil {
		t.Fatalf("unsorted ports accepted")
	}
}

func TestLoadEmbeddedPack(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Table.Len() == 0 {
		t.Fatalf("embedded pack is empty")
	}
	ports, err := p.Table.Lookup("SSH", "TCP")
	if err != nil {
		t.Fatalf("Lookup(SSH,TCP): %v", err)
	}
	if len(ports) != 1 || ports[0] != 22 {
		t.Fatalf("ssh/tcp = %v, want [22]", ports)
	}
	if _, err := p.Table.Lookup("definitely-not-a-service", "tcp"); !perr.IsCode(err, perr.ErrorCodeUnknownService) {
		t.Fatalf("embedded miss code = %v", perr.CodeOf(err))
	}
}

func TestEmitGoShape(t *testing.T) {
	out, err := EmitGo(buildTable(t), "ports")
	if err != nil {
		t.Fatalf("EmitGo: %v", err)
	}
	src := string(out)
	for _, want := range []string{
		"// Code generated by portreg-compile. DO NOT EDIT.",
		"package ports",
		`"foo/tcp": {8, 9, 10},`,
		`"bar/udp": {10},`,
		"func PortsForService(service, protocol string) ([]uint16, error)",
		"UnknownServiceError",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("generated source missing %q:\n%s", want, src)
		}
	}

	// determinism
	again, err := EmitGo(buildTable(t), "ports")
	if err != nil {
		t.Fatalf("EmitGo: %v", err)
	}
	if !bytes.Equal(out, again) {
		t.Fatalf("EmitGo not deterministic")
	}
}

func TestEmitGoRejectsBadPackage(t *testing.T) {
	for _, pkg := range []string{"9lives", "Bad", "a-b", "a b"} {
		if _, err := EmitGo(buildTable(t), pkg); err == nil {
			t.Fatalf("EmitGo(%q) accepted invalid package name", pkg)
		}
	}
}
