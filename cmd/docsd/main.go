// Command docsd serves the localized documentation API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/localedocs/pkg/config"
	"github.com/dmitrymomot/localedocs/pkg/httpserver"
	"github.com/dmitrymomot/localedocs/pkg/logger"
	"github.com/dmitrymomot/localedocs/pkg/requestid"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("docsd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.ErrorContext(ctx, "failed to release resources", logger.Error(err))
		}
	}()

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, a.site)
}
