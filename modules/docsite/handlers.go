package docsite

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/localedocs/pkg/docs"
	"github.com/dmitrymomot/localedocs/pkg/locale"
	"github.com/dmitrymomot/localedocs/pkg/logger"
)

const maxLocaleBody = 1 << 10

type localesView struct {
	Locales []locale.Info `json:"locales"`
	Active  string        `json:"active"`
	Default string        `json:"default"`
}

type changeLocaleRequest struct {
	Locale string `json:"locale"`
}

type site struct {
	opts     Options
	sessions *Registry
	resource *docs.StorageSource
}

// session resolves the request session, creating one and setting the cookie when the
// request has none or it expired.
func (s *site) session(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := s.sessions.Get(id); ok {
				return sess
			}
		}
	}

	sess := s.sessions.Create(r.Context(), s.opts.initialLocale(r))
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *site) locales(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeData(w, localesView{
		Locales: s.opts.Manifest.Locales,
		Active:  sess.Locale.Locale(),
		Default: s.opts.DefaultLocale,
	})
}

func (s *site) docs(w http.ResponseWriter, r *http.Request) {
	writeData(w, s.session(w, r).Loader.State())
}

func (s *site) changeLocale(w http.ResponseWriter, r *http.Request) {
	var req changeLocaleRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxLocaleBody)).Decode(&req); err != nil {
		writeError(w, ErrBadRequest, "request body must be a JSON object with a locale field")
		return
	}
	code := strings.TrimSpace(req.Locale)
	if !s.opts.Manifest.Has(code) {
		writeError(w, ErrUnsupportedLocale, "locale "+code+" is not supported")
		return
	}

	sess := s.session(w, r)
	if err := sess.Loader.ChangeLocale(r.Context(), code); err != nil {
		s.opts.Logger.WarnContext(r.Context(), "locale change left docs unavailable",
			logger.SessionID(sess.ID),
			logger.Locale(code),
			logger.Error(err),
		)
	}
	writeData(w, sess.Loader.State())
}

// resourceFile serves the raw locale resource from storage.
func (s *site) resourceFile(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "locale")
	data, err := s.resource.Fetch(r.Context(), code)
	if err != nil {
		status := docs.StatusCode(err)
		if status == 0 {
			s.opts.Logger.ErrorContext(r.Context(), "failed to read locale resource",
				logger.Locale(code),
				logger.Error(err),
			)
			status = http.StatusInternalServerError
		}
		writeError(w, HTTPError{Code: status, Key: errorKey(status)}, "")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *site) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, ErrNotFound, "")
}

func errorKey(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound.Key
	case http.StatusBadRequest:
		return ErrBadRequest.Key
	}
	return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
