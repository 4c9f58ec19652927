package docs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localedocs/pkg/docs"
)

func TestHTTPSource_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("requests resource by convention", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/locales/mm/docs.json", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "localedocs/1.0", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		src := docs.NewHTTPSource(srv.URL + "/")
		body, err := src.Fetch(context.Background(), "mm")
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(body))
	})

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		defer srv.Close()

		_, err := docs.NewHTTPSource(srv.URL).Fetch(context.Background(), "kn")
		var se *docs.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusTeapot, se.StatusCode)
		assert.Equal(t, "I'm a teapot", se.Status)
	})

	t.Run("custom pattern and user agent", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/static/i18n/kn.json", r.URL.Path)
			assert.Equal(t, "docs-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		src := docs.NewHTTPSource(srv.URL,
			docs.WithPathPattern("/static/i18n/{locale}.json"),
			docs.WithUserAgent("docs-test"),
			docs.WithHTTPClient(srv.Client()),
		)
		_, err := src.Fetch(context.Background(), "kn")
		require.NoError(t, err)
	})

	t.Run("escapes locale", func(t *testing.T) {
		t.Parallel()
		src := docs.NewHTTPSource("http://example.com")
		assert.Equal(t, "http://example.com/locales/a%2Fb/docs.json", src.URL("a/b"))
	})

	t.Run("body size limit", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer srv.Close()

		_, err := docs.NewHTTPSource(srv.URL, docs.WithMaxBodySize(10)).Fetch(context.Background(), "en")
		require.Error(t, err)
		assert.ErrorIs(t, err, docs.ErrBodyTooLarge)
		assert.NotErrorIs(t, err, docs.ErrInvalidPayload)

		body, err := docs.NewHTTPSource(srv.URL, docs.WithMaxBodySize(100)).Fetch(context.Background(), "en")
		require.NoError(t, err, "a body exactly at the limit is accepted")
		assert.Len(t, body, 100)

		l := docs.NewLoader(docs.NewHTTPSource(srv.URL, docs.WithMaxBodySize(10)))
		err = l.FetchLocale(context.Background(), "en")
		assert.ErrorIs(t, err, docs.ErrBodyTooLarge)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := docs.NewHTTPSource(url, docs.WithHTTPClient(&http.Client{Timeout: time.Second})).
			Fetch(context.Background(), "en")
		require.Error(t, err)
		assert.Equal(t, 0, docs.StatusCode(err))
	})
}
