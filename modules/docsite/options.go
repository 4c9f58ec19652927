package docsite

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/localedocs/pkg/docs"
	"github.com/dmitrymomot/localedocs/pkg/file"
	"github.com/dmitrymomot/localedocs/pkg/httpserver"
	"github.com/dmitrymomot/localedocs/pkg/locale"
)

const (
	// SessionCookie names the cookie carrying the session id.
	SessionCookie = "docs_session"
	// DefaultSessionLimit bounds the number of live sessions.
	DefaultSessionLimit = 1024
)

// Options wires the router. Source is required; everything else has defaults.
type Options struct {
	// Source provides locale payloads to session loaders.
	Source docs.Source
	// Storage serves raw locale resources. The resource route is only mounted when set.
	Storage file.Reader
	// PathPattern is the resource path with a {locale} placeholder.
	PathPattern string

	Manifest       locale.Manifest
	DefaultLocale  string
	FallbackLocale string
	// Negotiate picks a new session's locale from Accept-Language instead of DefaultLocale.
	Negotiate bool

	SessionLimit int
	SecureCookie bool

	ReadinessChecks []httpserver.CheckFunc
	Logger          *slog.Logger
}

func (o Options) withDefaults() Options {
	if len(o.Manifest.Locales) == 0 {
		o.Manifest = locale.DefaultManifest()
	}
	if o.PathPattern == "" {
		o.PathPattern = docs.DefaultPathPattern
	}
	if o.DefaultLocale == "" {
		o.DefaultLocale = docs.DefaultLocale
	}
	if o.FallbackLocale == "" {
		o.FallbackLocale = docs.DefaultFallbackLocale
	}
	if o.SessionLimit <= 0 {
		o.SessionLimit = DefaultSessionLimit
	}
	return o
}

// initialLocale chooses the locale of a new session.
func (o Options) initialLocale(r *http.Request) string {
	if !o.Negotiate {
		return o.DefaultLocale
	}
	return locale.Negotiate(r.Header.Get("Accept-Language"), o.Manifest.Codes(), o.DefaultLocale)
}
