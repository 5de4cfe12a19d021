// Package ianaxml reads the IANA "Service Name and Transport Protocol Port
// Number Registry" XML export and yields one raw record per <record> element.
//
// The reader streams with xml.Decoder token-by-token so the full registry
// (tens of MB) never has to live in memory. Records missing name, protocol,
// or number are still yielded; the registry builder decides what to skip
package ianaxml

import (
	"context"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"portreg/internal/adapters/source"
	"portreg/internal/core/registry"
	perr "portreg/internal/platform/errors"
)

// Namespace is the XML namespace of the IANA registry export
const Namespace = "http://www.iana.org/assignments"

// Reader streams records from an IANA registry XML document
type Reader struct {
	r io.Reader
}

// New returns a Reader over an already-open XML document
func New(r io.Reader) *Reader { return &Reader{r: r} }

// Open opens path and returns a Reader plus a close func for the file
func Open(path string) (*Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "open %s", path)
	}
	return New(f), f.Close, nil
}

// record mirrors the subset of the IANA <record> element the compiler uses
type record struct {
	Name     string `xml:"name"`
	Protocol string `xml:"protocol"`
	Number   string `xml:"number"`
}

// Each implements source.Source
func (rd *Reader) Each(ctx context.Context, fn func(registry.Record) error) error {
	dec := xml.NewDecoder(rd.r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read registry xml")
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "record" {
			continue
		}
		if ns := start.Name.Space; ns != "" && ns != Namespace {
			continue
		}

		var rec record
		if err := dec.DecodeElement(&rec, &start); err != nil {
			return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "decode registry record")
		}
		out := registry.Record{
			Name:     strings.TrimSpace(rec.Name),
			Protocol: strings.TrimSpace(rec.Protocol),
			PortSpec: strings.TrimSpace(rec.Number),
		}
		if err := fn(out); err != nil {
			return err
		}
	}
}

var _ source.Source = (*Reader)(nil)
