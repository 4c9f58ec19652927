package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/localedocs/modules/docsite"
	"github.com/dmitrymomot/localedocs/pkg/docs"
	"github.com/dmitrymomot/localedocs/pkg/file"
	"github.com/dmitrymomot/localedocs/pkg/httpserver"
	"github.com/dmitrymomot/localedocs/pkg/locale"
	"github.com/dmitrymomot/localedocs/pkg/logger"
	"github.com/dmitrymomot/localedocs/pkg/redis"
)

var (
	ErrUnknownStorage  = errors.New("unknown docs storage driver")
	ErrMissingFallback = errors.New("fallback locale resource is missing")
)

// manifest picks the locale set: a YAML manifest, then DOCS_LOCALES, then the default table.
func manifest(cfg Config) (locale.Manifest, error) {
	switch {
	case cfg.ManifestPath != "":
		return locale.LoadManifest(cfg.ManifestPath)
	case len(cfg.Locales) > 0:
		return locale.NewManifest(cfg.Locales...)
	}
	return locale.DefaultManifest(), nil
}

func storage(ctx context.Context, cfg Config) (file.Reader, error) {
	switch cfg.Storage {
	case storageLocal, "":
		return file.NewLocalStorage(cfg.Dir)
	case storageS3:
		return file.NewS3Storage(ctx, cfg.S3)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Storage)
}

// app is the wired service: the site handler plus what has to be released on exit.
type app struct {
	site    *docsite.Site
	closers []func() error
}

func (a *app) Close() error {
	a.site.Sessions.Close()
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func newApp(ctx context.Context, cfg Config, log *slog.Logger) (*app, error) {
	m, err := manifest(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{}
	opts := docsite.Options{
		PathPattern:    cfg.PathPattern,
		Manifest:       m,
		DefaultLocale:  cfg.Default,
		FallbackLocale: cfg.Fallback,
		Negotiate:      cfg.Negotiate,
		SessionLimit:   cfg.SessionLimit,
		SecureCookie:   cfg.SecureCookie,
		Logger:         log,
	}

	if cfg.OriginURL != "" {
		opts.Source = docs.NewHTTPSource(cfg.OriginURL, docs.WithPathPattern(cfg.PathPattern))
		log.InfoContext(ctx, "docs served from origin", slog.String("origin", cfg.OriginURL))
	} else {
		reader, err := storage(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("docs storage: %w", err)
		}
		src := docs.NewStorageSource(reader, cfg.PathPattern)
		opts.Storage = reader
		opts.Source = src
		opts.ReadinessChecks = append(opts.ReadinessChecks,
			httpserver.Check("storage", fallbackResource(src, cfg.Fallback)),
		)
		log.InfoContext(ctx, "docs served from storage", slog.String("driver", cfg.Storage))
		auditStorage(ctx, src, m, log)
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		opts.Source = docs.NewCachedSource(opts.Source, client,
			docs.WithCacheTTL(cfg.CacheTTL),
			docs.WithCacheLogger(log),
		)
		opts.ReadinessChecks = append(opts.ReadinessChecks,
			httpserver.Check("redis", redis.Healthcheck(client)),
		)
		log.InfoContext(ctx, "docs cache enabled", logger.Duration(cfg.CacheTTL))
	}

	a.site, err = docsite.NewRouter(opts)
	if err != nil {
		for _, c := range a.closers {
			_ = c()
		}
		return nil, err
	}
	return a, nil
}

// auditStorage compares the manifest with the storage tree and logs the differences.
// Neither side is fatal: a configured locale without a resource fails at fetch time and
// falls back, an unlisted one is simply never advertised.
func auditStorage(ctx context.Context, src *docs.StorageSource, m locale.Manifest, log *slog.Logger) []string {
	var missing []string
	for _, code := range m.Codes() {
		if !src.Exists(ctx, code) {
			missing = append(missing, code)
			log.WarnContext(ctx, "configured locale has no docs resource",
				logger.Locale(code),
				slog.String("path", src.Path(code)),
			)
		}
	}

	stored, err := src.Locales(ctx)
	if err != nil {
		log.WarnContext(ctx, "failed to list docs resources", logger.Error(err))
		return missing
	}
	for _, code := range stored {
		if !m.Has(code) {
			log.InfoContext(ctx, "docs resource not listed in locale manifest", logger.Locale(code))
		}
	}
	return missing
}

// fallbackResource is a readiness check: without the fallback resource a failed fetch has
// nothing to fall back to.
func fallbackResource(src *docs.StorageSource, fallback string) httpserver.CheckFunc {
	if fallback == "" {
		fallback = docs.DefaultFallbackLocale
	}
	return func(ctx context.Context) error {
		if !src.Exists(ctx, fallback) {
			return fmt.Errorf("%w: %s", ErrMissingFallback, src.Path(fallback))
		}
		return nil
	}
}
