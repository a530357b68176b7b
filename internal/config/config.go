package config

import (
	"time"

	"github.com/creasty/defaults"
)

type Server struct {
	HTTPPort      int    `default:"8000"`
	StaticsFolder string `default:""`
	ServerMode    string `default:"dev"`
}

type Database struct {
	Path string `default:"backoffice.db"`
}

type Auth struct {
	JWTSecret string        `default:"change-me"`
	TokenTTL  time.Duration `default:"24h"`
}

type Uploads struct {
	Folder string `default:"content"`
}

// Configuration is the full runtime configuration. Values are populated
// from defaults, then flags, then BACKOFFICE_* environment variables.
type Configuration struct {
	Server   Server
	Database Database
	Auth     Auth
	Uploads  Uploads
}

type Option func(*Configuration)

func WithDatabasePath(path string) Option {
	return func(c *Configuration) {
		c.Database.Path = path
	}
}

func WithJWTSecret(secret string) Option {
	return func(c *Configuration) {
		c.Auth.JWTSecret = secret
	}
}

func NewConfigurationWithOptionsAndDefaults(opts ...Option) *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
