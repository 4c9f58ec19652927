// Package logger builds *slog.Logger instances for localedocs services and libraries.
//
// # Architecture
//
// New applies functional options on top of a JSON handler writing to stdout at info level.
// When context extractors are registered, the handler is wrapped with a decorator that runs
// them on every record, so request-scoped values such as the request id or the docs
// session id appear without threading them through every call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "docsd"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "docs fetched", logger.Locale("mm"), logger.Count(12))
//
// # Configuration
//
// WithEnvironment picks sensible defaults per environment: text output at debug level for
// development, JSON at info level for staging and production. It also attaches the
// service and env attributes. WithLevel, WithFormat and WithOutput override individual
// settings; WithAttr adds static attributes.
//
// # Attributes
//
// Helpers in attr.go keep key names consistent across packages (locale, fallback_locale,
// session_id, count, status, duration, component, addr). Helpers taking an error or an
// optional value return an empty slog.Attr for nil input, which slog drops.
//
// Libraries default to Discard so they stay silent until a logger is injected.
package logger
