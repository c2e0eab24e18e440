// @title         Marquee API
// @version       0.1.0
// @description   Catalog browsing: paged listings, detail views and normalized media records

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"marquee/internal/adapters/tmdb"
	"marquee/internal/platform/config"
	"marquee/internal/platform/logger"
	"marquee/internal/platform/metrics"
	phttp "marquee/internal/platform/net/http"

	"marquee/internal/services/api"

	"golang.org/x/text/language"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_") // http surface lives under CORE_API_*
	catCfg := root.Prefix("CATALOG_")  // catalog client lives under CATALOG_*

	// bring up logging early
	l := logger.Get()

	m := metrics.Default()

	catalog := tmdb.NewClient(tmdb.Options{
		BaseURL:  catCfg.MayURL("BASE_URL", ""),
		APIKey:   catCfg.MustString("API_KEY"),
		Language: catCfg.MayLanguage("LANGUAGE", language.MustParse("es-ES")).String(),
		Timeout:  catCfg.MayDuration("TIMEOUT", 0),
		RPS:      catCfg.MayFloat64("RPS", 0),
		Burst:    catCfg.MayInt("BURST", 0),
		Metrics:  m,
	})

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Catalog:        catalog,
			Metrics:        m,
			Logger:         l,
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
			Life:           ctx,
		},
	)

	l.Info().Str("language", catalog.Language()).Msg("catalog client ready")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
