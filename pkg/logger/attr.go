package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Locale records the requested locale code.
func Locale(code string) slog.Attr {
	return slog.String("locale", code)
}

// Fallback records the fallback locale code.
func Fallback(code string) slog.Attr {
	return slog.String("fallback_locale", code)
}

// SessionID records a docs session identifier. Nil ids produce an empty Attr.
func SessionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("session_id", id)
}

// Count records a number of items, e.g. documents in a payload.
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Duration records an elapsed time or a TTL.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component names the subsystem writing the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Addr records a network address.
func Addr(addr string) slog.Attr {
	return slog.String("addr", addr)
}
