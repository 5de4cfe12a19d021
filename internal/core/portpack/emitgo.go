package portpack

import (
	"bytes"
	"fmt"
	"strconv"

	"portreg/internal/core/registry"
	perr "portreg/internal/platform/errors"
)

// EmitGo renders a frozen table as a standalone generated Go source file
// exposing PortsForService. The file depends only on the standard library so
// it can be dropped into any consumer. Entries are written in table order,
// so identical input yields identical bytes
func EmitGo(t *registry.Table, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = "ports"
	}
	if !validIdent(pkg) {
		return nil, perr.InvalidArgf("invalid Go package name %q", pkg)
	}

	var b bytes.Buffer
	b.WriteString("// Code generated by portreg-compile. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("import (\n\t\"fmt\"\n\t\"strings\"\n)\n\n")

	b.WriteString("// servicePorts maps \"service/protocol\" (lower case) to its assigned ports.\n")
	b.WriteString("var servicePorts = map[string][]uint16{\n")
	for _, e := range t.Entries() {
		fmt.Fprintf(&b, "\t%q: {%s},\n", e.Key.Name+"/"+e.Key.Protocol, joinPorts(e.Ports))
	}
	b.WriteString("}\n\n")

	b.WriteString(`// UnknownServiceError reports a service/protocol pair with no assignment.
type UnknownServiceError struct {
	Service  string
	Protocol string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service/protocol combination %q/%q", e.Service, e.Protocol)
}

// PortsForService returns the assigned ports for a service and protocol
// mnemonic, matched case-insensitively. The returned slice is sorted
// ascending and must not be mutated.
func PortsForService(service, protocol string) ([]uint16, error) {
	key := strings.ToLower(service) + "/" + strings.ToLower(protocol)
	if ports, ok := servicePorts[key]; ok {
		return ports, nil
	}
	return nil, &UnknownServiceError{Service: service, Protocol: protocol}
}
`)
	return b.Bytes(), nil
}

func joinPorts(ports []uint16) string {
	var b bytes.Buffer
	for i, p := range ports {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(int(p)))
	}
	return b.String()
}

// validIdent checks a plausible lower-case Go package name
func validIdent(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0
}
