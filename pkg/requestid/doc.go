// Package requestid tags every request with a correlation id.
//
// # Overview
//
// Middleware reuses the client's X-Request-ID header when it is well formed (letters,
// digits, "-" and "_", at most 128 characters) and generates a UUID otherwise. The id is
// stored in the request context and echoed in the response header.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Records written with the request context then carry request_id.
package requestid
