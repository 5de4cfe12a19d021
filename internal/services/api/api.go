// Package api provides the HTTP lookup API over a compiled registry pack
package api

import (
	"portreg/internal/core/portpack"
	"portreg/internal/platform/config"
	"portreg/internal/platform/logger"
	phttp "portreg/internal/platform/net/http"
	"portreg/internal/platform/net/middleware"

	"portreg/internal/services/api/lookup"
	"portreg/internal/services/api/meta"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Pack   *portpack.Pack
	Logger *logger.Logger
}

// Mount applies the common middleware stack and mounts all v1 routes
func Mount(r phttp.Router, opt Options) {
	r.Use(middleware.Stack(middleware.StackOptions{
		Slow:      opt.Config.MayDuration("SLOW", 0),
		Timeout:   opt.Config.MayDuration("TIMEOUT", 0),
		Heartbeat: opt.Config.MayString("HEARTBEAT", "/healthz"),
		CORS: middleware.CORSOptions{
			AllowedOrigins: opt.Config.MayCSV("CORS_ORIGINS", nil),
		},
	})...)

	r.Route("/v1", func(v1 phttp.Router) {
		meta.Mount(v1, opt.Pack)
		lookup.Mount(v1, lookup.NewService(opt.Pack.Table))
	})
}
