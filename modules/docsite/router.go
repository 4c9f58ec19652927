package docsite

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/localedocs/pkg/docs"
	"github.com/dmitrymomot/localedocs/pkg/httpserver"
	"github.com/dmitrymomot/localedocs/pkg/logger"
	"github.com/dmitrymomot/localedocs/pkg/requestid"
)

// ErrNilSource is returned by NewRouter when Options.Source is nil.
var ErrNilSource = errors.New("docsite: source is required")

// Site is the mounted docs surface and the sessions it owns.
type Site struct {
	chi.Router
	Sessions *Registry
}

// NewRouter builds the docs site router.
//
//	site, err := docsite.NewRouter(docsite.Options{
//	    Source:  docs.NewStorageSource(storage, ""),
//	    Storage: storage,
//	})
//	srv.Run(ctx, site)
func NewRouter(opts Options) (*Site, error) {
	if opts.Source == nil {
		return nil, ErrNilSource
	}
	opts = opts.withDefaults()
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	opts.Logger = opts.Logger.With(logger.Component("docsite"))

	codes := opts.Manifest.Codes()
	sessions, err := NewRegistry(opts.SessionLimit, func(log *slog.Logger) *docs.Loader {
		return docs.NewLoader(opts.Source,
			docs.WithAvailableLocales(codes...),
			docs.WithFallbackLocale(opts.FallbackLocale),
			docs.WithInitialLocale(opts.DefaultLocale),
			docs.WithLogger(log),
		)
	}, opts.Logger)
	if err != nil {
		return nil, err
	}

	s := &site{opts: opts, sessions: sessions}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.NotFound(s.notFound)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(opts.Logger, opts.ReadinessChecks...))

	if opts.Storage != nil {
		s.resource = docs.NewStorageSource(opts.Storage, opts.PathPattern)
		r.Get(opts.PathPattern, s.resourceFile)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.NoCache)
		api.Get("/locales", s.locales)
		api.Get("/docs", s.docs)
		api.Put("/locale", s.changeLocale)
	})

	return &Site{Router: r, Sessions: sessions}, nil
}

var _ http.Handler = (*Site)(nil)
