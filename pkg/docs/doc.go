// Package docs loads per-locale documentation payloads and exposes the document list of
// the active locale.
//
// A Loader owns a per-session Collection of parsed payloads keyed by locale code. Payloads
// are fetched on demand from a Source (HTTP origin, local directory, S3 bucket, optionally
// behind a Redis read-through cache) using the resource convention
//
//	/locales/{locale}/docs.json
//
// which must return a JSON object carrying an ordered docsList.docs array. Document
// descriptors are passed through untouched.
//
// # Fallback
//
// When a fetch fails, the loader records the failure and, unless the failed locale is the
// fallback locale itself or the fallback is already cached, performs exactly one fetch of
// the fallback locale ("en" by default). The fallback outcome is logged but never replaces
// the reported error, and a fallback attempt never triggers another fallback.
//
// # Usage
//
//	src := docs.NewHTTPSource("https://docs.example.com")
//	loader := docs.NewLoader(src,
//	    docs.WithAvailableLocales("mm", "en", "kn"),
//	    docs.WithLogger(log),
//	)
//
//	if err := loader.ChangeLocale(ctx, "mm"); err != nil {
//	    log.Warn("docs unavailable", logger.Error(err))
//	}
//	for _, d := range loader.Docs() {
//	    // render d
//	}
//
// # Sources
//
//   - HTTPSource issues GET requests against an origin. Non-2xx responses become a
//     *StatusError and oversized bodies fail with ErrBodyTooLarge.
//   - StorageSource reads from a file.Reader and reports missing objects as a 404
//     StatusError, so both sources fail the same way. It can also list the locales present
//     in storage, which the service uses to check its manifest at startup.
//   - CachedSource wraps any source with a Redis read-through cache of raw bodies. Redis
//     failures are logged and the origin is used instead.
//
// # Errors
//
// Every failed fetch is reported as a *FetchError naming the locale, whose message reads
//
//	failed to fetch docs for locale "kn": 404 Not Found
//
// StatusCode extracts the origin status; errors.Is matches ErrNotFound for 404s and
// ErrInvalidPayload for bodies that are not JSON objects.
//
// # Concurrency
//
// Loader state sits behind a RWMutex that is never held across I/O. IsLoading counts
// in-flight fetches, so overlapping calls report loading until the last one ends.
// Concurrent fetches of the same locale are not coalesced.
//
// # Reactive binding
//
// Bind subscribes the loader to a session-wide LocaleSetting (see pkg/locale). The listener
// runs immediately on registration and on every change, synchronously performing the same
// cache-check-then-fetch routine as ChangeLocale.
package docs
