package main

import (
	"time"

	"github.com/dmitrymomot/localedocs/pkg/file"
	"github.com/dmitrymomot/localedocs/pkg/httpserver"
	"github.com/dmitrymomot/localedocs/pkg/redis"
)

const (
	storageLocal = "local"
	storageS3    = "s3"
)

// Config is the docsd process configuration, read from the environment and .env.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"docsd"`

	Storage      string        `env:"DOCS_STORAGE" envDefault:"local"` // local or s3
	Dir          string        `env:"DOCS_DIR" envDefault:"./public"`
	OriginURL    string        `env:"DOCS_ORIGIN_URL"` // Fetch payloads over HTTP instead of from storage
	PathPattern  string        `env:"DOCS_PATH_PATTERN" envDefault:"/locales/{locale}/docs.json"`
	Locales      []string      `env:"DOCS_LOCALES" envSeparator:","`
	ManifestPath string        `env:"DOCS_MANIFEST"`
	Fallback     string        `env:"DOCS_FALLBACK_LOCALE" envDefault:"en"`
	Default      string        `env:"DOCS_DEFAULT_LOCALE" envDefault:"en"`
	Negotiate    bool          `env:"DOCS_NEGOTIATE" envDefault:"false"`
	SessionLimit int           `env:"DOCS_SESSION_LIMIT" envDefault:"1024"`
	SecureCookie bool          `env:"DOCS_SECURE_COOKIE" envDefault:"false"`
	CacheTTL     time.Duration `env:"DOCS_CACHE_TTL" envDefault:"10m"`

	HTTP  httpserver.Config
	S3    file.S3Config
	Redis redis.Config
}
