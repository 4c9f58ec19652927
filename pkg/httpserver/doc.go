// Package httpserver runs an http.Handler with graceful shutdown and the liveness and
// readiness probes used by the docs service.
//
// Run blocks until the context is cancelled, SIGINT or SIGTERM arrives, or the listener
// fails. Listen failures are wrapped with ErrStart and shutdown failures with ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// # Configuration
//
// Config reads HTTP_ADDR, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT and
// HTTP_SHUTDOWN_TIMEOUT; NewFromConfig turns it into options. WithStartHook receives the
// bound address, which tests use to wait for the listener.
//
// # Health checks
//
// LivenessHandler always answers ALIVE. Readiness checks are plain functions named with
// Check; the first failure is logged and answered with 503 NOT_READY:
//
//	r.Get("/health/ready", httpserver.ReadinessHandler(log,
//	    httpserver.Check("redis", redis.Healthcheck(client)),
//	))
package httpserver
