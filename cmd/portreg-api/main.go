// Command portreg-api serves lookups over a compiled registry pack
package main

import (
	"context"

	"portreg/internal/core/portpack"
	"portreg/internal/platform/config"
	"portreg/internal/platform/logger"
	phttp "portreg/internal/platform/net/http"

	"portreg/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (PORTREG_API_*)
	root := config.New()
	apiCfg := root.Prefix("PORTREG_API_")

	// bring up logging early
	l := logger.Get()

	// load the pack: an explicit path wins, otherwise the embedded default
	var (
		pack *portpack.Pack
		err  error
	)
	if path := apiCfg.MayString("PACK", ""); path != "" {
		pack, err = portpack.LoadFile(path)
	} else {
		pack, err = portpack.Load()
	}
	if err != nil {
		l.Panic().Err(err).Msg("pack load failed")
	}
	l.Info().
		Str("source", pack.Meta.Source).
		Int("services", pack.Table.Len()).
		Int("ports", pack.Table.PortCount()).
		Msg("registry pack loaded")

	// http server (reads PORTREG_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: apiCfg,
			Pack:   pack,
			Logger: l,
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
