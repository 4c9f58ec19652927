// Package locale holds the session-wide locale setting and the configured locale set.
//
// Store is the source of truth for a session's active locale. Consumers register a
// Listener with Subscribe; the listener is invoked immediately with the current locale and
// then synchronously on every change, in registration order. Changes are delivered one at
// a time: a SetLocale call waits for the listeners of the previous change, so the last
// value a listener sees is always the current one. Listeners may read the store but must
// not set it:
//
//	store := locale.NewStore("en")
//	unsubscribe := store.Subscribe(ctx, func(ctx context.Context, code string) {
//	    // react to code
//	})
//	defer unsubscribe()
//
//	store.SetLocale(ctx, "mm") // listeners run before SetLocale returns
//
// Manifest describes the supported locales (code and display name). It can be built from a
// list of codes or loaded from a YAML file:
//
//	locales:
//	  - code: en
//	    name: English
//	  - code: mm
//	    name: Burmese
//
// Names missing from the YAML are derived from the code with golang.org/x/text/cases,
// except for the site's own locales (Burmese, English, Karen) which are known.
//
// # Negotiation
//
// Negotiate picks a supported locale from an Accept-Language header: exact code matches
// first, in q-value order, then base-language matches ("en-GB" selects "en"), then the
// fallback. Entries with q=0 and the "*" wildcard are ignored.
//
//	code := locale.Negotiate(r.Header.Get("Accept-Language"), m.Codes(), "en")
package locale
