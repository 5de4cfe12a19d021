package registry

import (
	"strconv"
	"strings"

	perr "portreg/internal/platform/errors"
)

// MaxPort is the largest valid port number (16-bit unsigned bound)
const MaxPort = 65535

// ParsePortSpec expands a port spec into explicit ports.
// One dash-delimited segment is a single port, two segments are an inclusive
// range. Reversed range bounds are swapped, not rejected: the registry lists
// some ranges high-to-low and both orders mean the same set.
// Any other segment count fails with ErrorCodeInvalidPortFormat
func ParsePortSpec(spec string) ([]uint16, error) {
	segs := strings.Split(spec, "-")
	switch len(segs) {
	case 1:
		p, err := parsePort(segs[0], spec)
		if err != nil {
			return nil, err
		}
		return []uint16{p}, nil
	case 2:
		lo, err := parsePort(segs[0], spec)
		if err != nil {
			return nil, err
		}
		hi, err := parsePort(segs[1], spec)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		out := make([]uint16, 0, int(hi)-int(lo)+1)
		for p := int(lo); p <= int(hi); p++ {
			out = append(out, uint16(p))
		}
		return out, nil
	default:
		return nil, perr.InvalidPortFormatf(
			"expected port to be a number or a dash-delimited range, got %q", spec)
	}
}

// parsePort validates one port token. lit is the token, spec the full spec
// it came from so errors name both
func parsePort(lit, spec string) (uint16, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(lit), 10, 64)
	if err != nil || n > MaxPort {
		if lit == spec {
			return 0, perr.InvalidPortf(
				"expected port to be a number in the range 0-65535 inclusive, got %q", lit)
		}
		return 0, perr.InvalidPortf(
			"expected port to be a number in the range 0-65535 inclusive, got %q in spec %q", lit, spec)
	}
	return uint16(n), nil
}
