// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv (optional .env files) with
// github.com/caarlos0/env/v11 (struct tags) behind a small generic API:
//
//   - Load parses the environment into any struct and caches the result per type.
//   - MustLoad does the same and panics, for configuration the process cannot start
//     without.
//   - LoadEnv reads explicit .env files into the process environment.
//   - ResetCache forgets cached values; tests use it together with t.Setenv.
//
// # Architecture
//
// Parsed values are stored in a map keyed by reflect.Type behind a mutex, so every type
// is parsed at most once per process no matter how many goroutines ask for it. The default
// .env in the working directory is read once, on the first Load, when it exists. Values
// already present in the environment always win over files.
//
// # Usage
//
//	type DocsConfig struct {
//	    Dir     string   `env:"DOCS_DIR" envDefault:"./public"`
//	    Locales []string `env:"DOCS_LOCALES" envSeparator:"," envDefault:"mm,en,kn"`
//	}
//
//	var cfg DocsConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Nested structs are parsed too, which is how the service composes the sections of other
// packages (httpserver.Config, file.S3Config, redis.Config) into one process config.
//
// # Error Handling
//
// Errors are joined with ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer and can be
// matched with errors.Is.
package config
