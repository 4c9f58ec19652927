// Package docsite is the HTTP surface of the documentation site.
//
// Every browser session gets a docs_session cookie. Behind it sits a locale.Store and a
// docs.Loader bound to that store, so switching the session locale refetches the docs list
// when it is not cached yet. Sessions live in a bounded LRU and are unbound on eviction.
//
// Routes:
//
//	GET  /locales/{locale}/docs.json   raw locale resource (storage-backed sites only)
//	GET  /api/locales                  configured locales and the session locale
//	GET  /api/docs                     session loader state
//	PUT  /api/locale                   {"locale":"mm"} switches the session locale
//	GET  /health/live, /health/ready   probes
package docsite
