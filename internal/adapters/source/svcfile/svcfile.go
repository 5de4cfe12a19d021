// Package svcfile reads services(5) style files ("name port/protocol"
// with optional aliases and # comments) and yields one raw record per line
package svcfile

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"portreg/internal/adapters/source"
	"portreg/internal/core/registry"
	perr "portreg/internal/platform/errors"
)

// Reader streams records from a services(5) file
type Reader struct {
	r io.Reader
}

// New returns a Reader over an already-open services file
func New(r io.Reader) *Reader { return &Reader{r: r} }

// Open opens path and returns a Reader plus a close func for the file
func Open(path string) (*Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "open %s", path)
	}
	return New(f), f.Close, nil
}

// Each implements source.Source. Comment-only and blank lines are not
// yielded at all; lines that have content but not the full
// "name port/protocol" shape come out as incomplete records so the
// builder can count them as skipped
func (rd *Reader) Each(ctx context.Context, fn func(registry.Record) error) error {
	sc := bufio.NewScanner(rd.r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := fn(parseLine(line)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read services file")
	}
	return nil
}

// parseLine splits "name  port/protocol [aliases...]". Aliases are ignored;
// the registry keys on the canonical first name only
func parseLine(line string) registry.Record {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return registry.Record{Name: fields[0]}
	}
	spec, proto, ok := strings.Cut(fields[1], "/")
	if !ok {
		return registry.Record{Name: fields[0], PortSpec: fields[1]}
	}
	return registry.Record{
		Name:     fields[0],
		Protocol: proto,
		PortSpec: spec,
	}
}

var _ source.Source = (*Reader)(nil)
