// Command portreg-compile turns a service-name registry dump into the
// compiled lookup artifact (JSON pack and/or generated Go source)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"portreg/internal/adapters/source"
	"portreg/internal/adapters/source/ianaxml"
	"portreg/internal/adapters/source/svcfile"
	"portreg/internal/core/portpack"
	"portreg/internal/core/registry"
	"portreg/internal/platform/logger"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openSource picks the reader for the input. Format auto sniffs by
// extension: .xml means the IANA registry export, anything else is
// treated as a services(5) file. "-" reads stdin
func openSource(in, format string) (source.Source, func() error, error) {
	if format == "auto" {
		if strings.EqualFold(filepath.Ext(in), ".xml") {
			format = "xml"
		} else {
			format = "services"
		}
	}
	switch format {
	case "xml":
		if in == "-" {
			return ianaxml.New(os.Stdin), func() error { return nil }, nil
		}
		return ianaxml.Open(in)
	case "services":
		if in == "-" {
			return svcfile.New(os.Stdin), func() error { return nil }, nil
		}
		return svcfile.Open(in)
	default:
		return nil, nil, fmt.Errorf("unknown format %q (want xml, services, or auto)", format)
	}
}

func writeOut(path string, b []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func main() {
	var (
		in         = flag.String("in", "", "input registry file, - for stdin (IANA XML or services(5) format)")
		format     = flag.String("format", "auto", "input format: xml, services, or auto")
		out        = flag.String("out", "", "write the JSON pack here (- for stdout)")
		gen        = flag.String("gen", "", "write generated Go source here (- for stdout)")
		genPackage = flag.String("gen-package", "ports", "package name for generated Go source")
		pretty     = flag.Bool("pretty", false, "indent the JSON pack")
		verbose    = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger.Init(logger.Options{Level: level, Service: "portreg-compile"})

	if *in == "" {
		must(fmt.Errorf("missing -in"))
	}
	if *out == "" && *gen == "" {
		must(fmt.Errorf("nothing to do: pass -out and/or -gen"))
	}

	ctx := logger.WithRun(context.Background(), uuid.NewString())
	log := logger.C(ctx)
	start := time.Now()

	src, closeSrc, err := openSource(*in, *format)
	must(err)
	defer func() { _ = closeSrc() }()

	b := registry.NewBuilder()
	must(src.Each(ctx, func(rec registry.Record) error {
		log.Debug().
			Str("name", rec.Name).
			Str("protocol", rec.Protocol).
			Str("ports", rec.PortSpec).
			Msg("record")
		return b.Add(rec)
	}))

	stats := b.Stats()
	tab, err := b.Freeze()
	must(err)

	meta := portpack.Meta{
		Source:  filepath.Base(*in),
		Records: stats.Seen,
		Skipped: stats.Skipped,
	}

	if *out != "" {
		enc, err := portpack.Encode(tab, meta, *pretty)
		must(err)
		must(writeOut(*out, enc))
	}
	if *gen != "" {
		gsrc, err := portpack.EmitGo(tab, *genPackage)
		must(err)
		must(writeOut(*gen, gsrc))
	}

	log.Info().
		Int("records", stats.Seen).
		Int("skipped", stats.Skipped).
		Int("services", tab.Len()).
		Int("ports", tab.PortCount()).
		Dur("took", time.Since(start)).
		Msg("compiled registry")
}
