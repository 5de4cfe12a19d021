// Package meta serves health, version, and registry metadata endpoints
package meta

import (
	"net/http"

	"portreg/internal/core/portpack"
	"portreg/internal/core/version"
	phttp "portreg/internal/platform/net/http"
)

// RegistryInfo summarizes the pack the API is serving
type RegistryInfo struct {
	Version  int    `json:"version"`
	Source   string `json:"source,omitempty"`
	Records  int    `json:"records,omitempty"`
	Skipped  int    `json:"skipped,omitempty"`
	Services int    `json:"services"`
	Ports    int    `json:"ports"`
}

// Mount registers the meta routes on r
func Mount(r phttp.Router, pack *portpack.Pack) {
	phttp.GetJSON(r, "/meta/health", func(*http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	phttp.GetJSON(r, "/meta/version", func(*http.Request) (any, error) {
		return version.Info(), nil
	})

	phttp.GetJSON(r, "/meta/registry", func(*http.Request) (any, error) {
		return RegistryInfo{
			Version:  pack.Version,
			Source:   pack.Meta.Source,
			Records:  pack.Meta.Records,
			Skipped:  pack.Meta.Skipped,
			Services: pack.Table.Len(),
			Ports:    pack.Table.PortCount(),
		}, nil
	})
}
