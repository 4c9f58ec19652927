// Package redis connects to the Redis instance used as the shared docs payload cache.
//
// # Usage
//
// Connect parses a redis:// URL and pings until the server answers or the attempts run
// out:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	    src = docs.NewCachedSource(src, client, docs.WithCacheTTL(ttl))
//	}
//
// Healthcheck adapts a client into a readiness check for httpserver.ReadinessHandler.
//
// # Configuration
//
// Config reads REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL and
// REDIS_CONNECT_TIMEOUT. An empty URL disables the cache.
//
// # Errors
//
// ErrEmptyConnectionURL, ErrFailedToParseRedisConnString, ErrRedisNotReady and
// ErrHealthcheckFailed are joined with the underlying driver error.
package redis
