package main

import (
	"context"

	"github.com/joho/godotenv"

	"gitfolio/internal/platform/config"
	"gitfolio/internal/platform/logger"
	phttp "gitfolio/internal/platform/net/http"

	"gitfolio/internal/adapters/github"
	"gitfolio/internal/adapters/stackexchange"
	"gitfolio/internal/core/version"
	"gitfolio/internal/services/api"
)

func main() {
	// local development convenience only; a missing .env is not an error
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()
	l.Info().Str("service", version.Service).Str("version", version.Info().Version).Msg("starting")

	ghCfg := root.Prefix("GITHUB_")
	gh := github.NewClient(github.Options{
		Token: ghCfg.MayString("TOKEN", ""),
	})
	if !gh.HasToken() {
		l.Warn().Msg("no GITHUB_TOKEN configured, contribution stats will be unavailable")
	}

	seCfg := root.Prefix("STACKEXCHANGE_")
	se := stackexchange.NewClient(stackexchange.Options{
		Key:            seCfg.MayString("KEY", ""),
		EnableFallback: seCfg.MayBool("FALLBACK", true),
	})

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Logger: l,
			GitHub: gh,
			Stack:  se,
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
