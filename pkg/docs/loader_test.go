package docs_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localedocs/pkg/docs"
	"github.com/dmitrymomot/localedocs/pkg/locale"
)

// origin serves locale resources and counts requests per path.
type origin struct {
	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	hits     map[string]int
}

func newOrigin() *origin {
	return &origin{
		bodies:   map[string]string{},
		statuses: map[string]int{},
		hits:     map[string]int{},
	}
}

func (o *origin) set(code string, status int, body string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses[code] = status
	o.bodies[code] = body
}

func (o *origin) count(code string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hits["/locales/"+code+"/docs.json"]
}

func (o *origin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o.mu.Lock()
	o.hits[r.URL.Path]++
	var status int
	var body string
	for code := range o.statuses {
		if r.URL.Path == "/locales/"+code+"/docs.json" {
			status, body = o.statuses[code], o.bodies[code]
		}
	}
	o.mu.Unlock()

	if status == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newLoader(t *testing.T, o *origin, opts ...docs.Option) *docs.Loader {
	t.Helper()
	srv := httptest.NewServer(o)
	t.Cleanup(srv.Close)
	return docs.NewLoader(docs.NewHTTPSource(srv.URL), opts...)
}

func docsJSON(t *testing.T, l *docs.Loader) string {
	t.Helper()
	out := "["
	for i, d := range l.Docs() {
		if i > 0 {
			out += ","
		}
		out += string(d)
	}
	return out + "]"
}

func TestLoader_Defaults(t *testing.T) {
	t.Parallel()
	l := docs.NewLoader(nil)

	assert.Equal(t, "en", l.ActiveLocale())
	assert.Equal(t, []string{"mm", "en", "kn"}, l.AvailableLocales())
	assert.False(t, l.IsLoading())
	assert.NoError(t, l.Err())
	assert.Empty(t, l.Docs())
	assert.NotNil(t, l.Docs())
}

func TestLoader_ChangeLocale_Success(t *testing.T) {
	t.Parallel()
	o := newOrigin()
	o.set("en", http.StatusOK, `{"docsList":{"docs":[{"title":"Intro"}]}}`)
	l := newLoader(t, o)

	err := l.ChangeLocale(context.Background(), "en")
	require.NoError(t, err)

	assert.JSONEq(t, `[{"title":"Intro"}]`, docsJSON(t, l))
	assert.False(t, l.IsLoading())
	assert.NoError(t, l.Err())

	st := l.State()
	assert.Nil(t, st.Error)
	assert.Equal(t, "en", st.Locale)
	assert.Len(t, st.Docs, 1)
	assert.Equal(t, []string{"en"}, st.CachedLocales)
}

func TestLoader_FetchThenChange(t *testing.T) {
	t.Parallel()
	o := newOrigin()
	for _, code := range []string{"mm", "en", "kn"} {
		o.set(code, http.StatusOK, `{"docsList":{"docs":[{"title":"`+code+`-1"},{"title":"`+code+`-2"}]}}`)
	}
	l := newLoader(t, o)
	ctx := context.Background()

	for _, code := range l.AvailableLocales() {
		require.NoError(t, l.FetchLocale(ctx, code))
		require.NoError(t, l.ChangeLocale(ctx, code))
		assert.JSONEq(t, `[{"title":"`+code+`-1"},{"title":"`+code+`-2"}]`, docsJSON(t, l))
		assert.Equal(t, 1, o.count(code), "change after fetch is a cache hit")
	}
}

func TestLoader_ChangeLocale_Idempotent(t *testing.T) {
	t.Parallel()
	o := newOrigin()
	o.set("mm", http.StatusOK, `{"docsList":{"docs":[]}}`)
	l := newLoader(t, o)
	ctx := context.Background()

	require.NoError(t, l.ChangeLocale(ctx, "mm"))
	require.NoError(t, l.ChangeLocale(ctx, "mm"))
	assert.Equal(t, 1, o.count("mm"))
}

func TestLoader_FetchLocale_AlwaysRefetches(t *testing.T) {
	t.Parallel()
	o := newOrigin()
	o.set("en", http.StatusOK, `{"docsList":{"docs":[{"v":1}]}}`)
	l := newLoader(t, o)
	ctx := context.Background()

	require.NoError(t, l.FetchLocale(ctx, "en"))
	o.set("en", http.StatusOK, `{"docsList":{"docs":[{"v":2}]}}`)
	require.NoError(t, l.FetchLocale(ctx, "en"))

	assert.Equal(t, 2, o.count("en"))
	assert.JSONEq(t, `[{"v":2}]`, docsJSON(t, l))
}

func TestLoader_Fallback(t *testing.T) {
	t.Parallel()

	t.Run("fallback fetched once and failure keeps original error", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("mm", http.StatusInternalServerError, `oops`)
		o.set("en", http.StatusServiceUnavailable, `down`)
		l := newLoader(t, o)

		err := l.FetchLocale(context.Background(), "mm")
		require.Error(t, err)

		assert.Equal(t, 1, o.count("mm"))
		assert.Equal(t, 1, o.count("en"))

		var fe *docs.FetchError
		require.ErrorAs(t, l.Err(), &fe)
		assert.Equal(t, "mm", fe.Locale)
		assert.Equal(t, http.StatusInternalServerError, docs.StatusCode(l.Err()))
		assert.False(t, l.Has("mm"))
		assert.False(t, l.Has("en"))
		assert.False(t, l.IsLoading())
	})

	t.Run("successful fallback is cached but error remains", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("mm", http.StatusNotFound, ``)
		o.set("en", http.StatusOK, `{"docsList":{"docs":[{"title":"Intro"}]}}`)
		l := newLoader(t, o)

		err := l.ChangeLocale(context.Background(), "mm")
		require.Error(t, err)

		assert.True(t, l.Has("en"))
		assert.False(t, l.Has("mm"))
		assert.Empty(t, l.Docs(), "active locale has no entry")
		assert.Contains(t, l.Err().Error(), `"mm"`)
	})

	t.Run("no fallback when en is cached", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("en", http.StatusOK, `{"docsList":{"docs":[]}}`)
		o.set("kn", http.StatusNotFound, `missing`)
		l := newLoader(t, o)
		ctx := context.Background()

		require.NoError(t, l.ChangeLocale(ctx, "en"))
		err := l.ChangeLocale(ctx, "kn")
		require.Error(t, err)

		assert.Equal(t, 1, o.count("en"))
		assert.Contains(t, l.Err().Error(), "kn")
		assert.Contains(t, l.Err().Error(), "404")
		assert.Equal(t, "kn", l.ActiveLocale())
		assert.Empty(t, l.Docs())
		assert.True(t, errors.Is(l.Err(), docs.ErrNotFound))
	})

	t.Run("no fallback loop for en", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("en", http.StatusBadGateway, ``)
		l := newLoader(t, o)

		err := l.FetchLocale(context.Background(), "en")
		require.Error(t, err)
		assert.Equal(t, 1, o.count("en"))
	})

	t.Run("custom fallback locale", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("mm", http.StatusOK, `{"docsList":{"docs":[]}}`)
		l := newLoader(t, o, docs.WithFallbackLocale("mm"))

		require.Error(t, l.FetchLocale(context.Background(), "kn"))
		assert.Equal(t, 1, o.count("mm"))
		assert.Equal(t, 0, o.count("en"))
		assert.True(t, l.Has("mm"))
	})
}

func TestLoader_ParseErrors(t *testing.T) {
	t.Parallel()
	o := newOrigin()
	o.set("en", http.StatusOK, `{"docsList":{"docs":[]}}`)
	o.set("kn", http.StatusOK, `not json`)
	o.set("mm", http.StatusOK, `[1,2]`)
	l := newLoader(t, o)
	ctx := context.Background()

	require.NoError(t, l.FetchLocale(ctx, "en"))

	err := l.FetchLocale(ctx, "kn")
	assert.ErrorIs(t, err, docs.ErrInvalidPayload)
	assert.False(t, l.Has("kn"))

	err = l.FetchLocale(ctx, "mm")
	assert.ErrorIs(t, err, docs.ErrInvalidPayload)
	assert.False(t, l.Has("mm"))
}

func TestLoader_ErrorClearedOnNextFetch(t *testing.T) {
	t.Parallel()
	o := newOrigin()
	o.set("en", http.StatusOK, `{"docsList":{"docs":[]}}`)
	l := newLoader(t, o)
	ctx := context.Background()

	require.Error(t, l.ChangeLocale(ctx, "xx"))
	require.Error(t, l.Err())

	require.NoError(t, l.FetchLocale(ctx, "en"))
	assert.NoError(t, l.Err())
}

func TestLoader_NoValidationAgainstAvailable(t *testing.T) {
	t.Parallel()
	o := newOrigin()
	o.set("fr", http.StatusOK, `{"docsList":{"docs":[{"t":"bonjour"}]}}`)
	l := newLoader(t, o, docs.WithAvailableLocales("en"))

	require.NoError(t, l.ChangeLocale(context.Background(), "fr"))
	assert.JSONEq(t, `[{"t":"bonjour"}]`, docsJSON(t, l))
	assert.Equal(t, []string{"en"}, l.AvailableLocales())
}

func TestLoader_NilSource(t *testing.T) {
	t.Parallel()
	l := docs.NewLoader(nil)
	err := l.FetchLocale(context.Background(), "en")
	assert.ErrorIs(t, err, docs.ErrNilSource)
}

func TestLoader_IsLoadingDuringFetch(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	src := docs.SourceFunc(func(ctx context.Context, code string) ([]byte, error) {
		once.Do(func() { close(started) })
		<-release
		return []byte(`{"docsList":{"docs":[]}}`), nil
	})
	l := docs.NewLoader(src)

	done := make(chan error, 1)
	go func() { done <- l.ChangeLocale(context.Background(), "mm") }()

	<-started
	assert.True(t, l.IsLoading())
	assert.True(t, l.State().Loading)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, l.IsLoading())
}

func TestLoader_LoadingCoversFallback(t *testing.T) {
	t.Parallel()
	var loadingDuringFallback atomic.Bool
	var l *docs.Loader

	src := docs.SourceFunc(func(ctx context.Context, code string) ([]byte, error) {
		if code == "en" {
			loadingDuringFallback.Store(l.IsLoading())
			return nil, errors.New("offline")
		}
		return nil, docs.NewStatusError(http.StatusNotFound)
	})
	l = docs.NewLoader(src)

	require.Error(t, l.FetchLocale(context.Background(), "kn"))
	assert.True(t, loadingDuringFallback.Load())
	assert.False(t, l.IsLoading())
	assert.Equal(t, http.StatusNotFound, docs.StatusCode(l.Err()))
}

func TestLoader_ConcurrentFetchesNotCoalesced(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	gate := make(chan struct{})

	src := docs.SourceFunc(func(ctx context.Context, code string) ([]byte, error) {
		calls.Add(1)
		<-gate
		return []byte(`{"docsList":{"docs":[{"n":1}]}}`), nil
	})
	l := docs.NewLoader(src)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.FetchLocale(context.Background(), "mm")
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, l.Has("mm"))
	assert.False(t, l.IsLoading())
}

func TestLoader_Bind(t *testing.T) {
	t.Parallel()

	t.Run("fetches immediately on bind", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("kn", http.StatusOK, `{"docsList":{"docs":[{"title":"K"}]}}`)
		l := newLoader(t, o)
		store := locale.NewStore("kn")

		unbind := l.Bind(context.Background(), store)
		defer unbind()

		assert.Equal(t, "kn", l.ActiveLocale())
		assert.Equal(t, 1, o.count("kn"))
		assert.JSONEq(t, `[{"title":"K"}]`, docsJSON(t, l))
	})

	t.Run("follows store changes with cache check", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("en", http.StatusOK, `{"docsList":{"docs":[{"title":"E"}]}}`)
		o.set("mm", http.StatusOK, `{"docsList":{"docs":[{"title":"M"}]}}`)
		l := newLoader(t, o)
		store := locale.NewStore("en")
		ctx := context.Background()

		unbind := l.Bind(ctx, store)
		defer unbind()

		store.SetLocale(ctx, "mm")
		assert.JSONEq(t, `[{"title":"M"}]`, docsJSON(t, l))

		store.SetLocale(ctx, "en")
		store.SetLocale(ctx, "mm")
		assert.Equal(t, 1, o.count("en"))
		assert.Equal(t, 1, o.count("mm"))
	})

	t.Run("change locale routes through store with one request", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("en", http.StatusOK, `{"docsList":{"docs":[]}}`)
		o.set("mm", http.StatusOK, `{"docsList":{"docs":[{"title":"M"}]}}`)
		l := newLoader(t, o)
		store := locale.NewStore("en")
		ctx := context.Background()

		unbind := l.Bind(ctx, store)
		defer unbind()

		require.NoError(t, l.ChangeLocale(ctx, "mm"))
		assert.Equal(t, "mm", store.Locale())
		assert.Equal(t, 1, o.count("mm"))
		assert.JSONEq(t, `[{"title":"M"}]`, docsJSON(t, l))
	})

	t.Run("change locale reports bound fetch failure", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("en", http.StatusOK, `{"docsList":{"docs":[]}}`)
		l := newLoader(t, o)
		store := locale.NewStore("en")
		ctx := context.Background()

		unbind := l.Bind(ctx, store)
		defer unbind()

		err := l.ChangeLocale(ctx, "kn")
		require.Error(t, err)
		assert.Equal(t, 1, o.count("kn"))
		assert.Equal(t, http.StatusNotFound, docs.StatusCode(err))

		// Unchanged setting retries the uncached locale directly
		require.Error(t, l.ChangeLocale(ctx, "kn"))
		assert.Equal(t, 2, o.count("kn"))
	})

	t.Run("unbind stops following", func(t *testing.T) {
		t.Parallel()
		o := newOrigin()
		o.set("en", http.StatusOK, `{"docsList":{"docs":[]}}`)
		o.set("mm", http.StatusOK, `{"docsList":{"docs":[]}}`)
		l := newLoader(t, o)
		store := locale.NewStore("en")
		ctx := context.Background()

		unbind := l.Bind(ctx, store)
		unbind()
		unbind()

		store.SetLocale(ctx, "mm")
		assert.Equal(t, "en", l.ActiveLocale())
		assert.Equal(t, 0, o.count("mm"))
		assert.Equal(t, 0, store.Len())

		require.NoError(t, l.ChangeLocale(ctx, "mm"))
		assert.Equal(t, "mm", l.ActiveLocale())
		assert.Equal(t, 1, o.count("mm"))
	})
}

func TestLoader_Bind_OverlappingChanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	src := docs.SourceFunc(func(_ context.Context, code string) ([]byte, error) {
		if code == "mm" {
			close(entered)
			<-release
		}
		return []byte(`{"docsList":{"docs":[{"l":"` + code + `"}]}}`), nil
	})
	l := docs.NewLoader(src)
	store := locale.NewStore("en")
	unbind := l.Bind(ctx, store)
	defer unbind()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = l.ChangeLocale(ctx, "mm")
	}()
	<-entered
	go func() {
		defer wg.Done()
		_ = l.ChangeLocale(ctx, "kn")
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, "kn", store.Locale())
	assert.Equal(t, store.Locale(), l.ActiveLocale(), "loader must follow the latest setting")
	assert.JSONEq(t, `[{"l":"kn"}]`, docsJSON(t, l))
	assert.NoError(t, l.Err())
}
