package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

// Config is the full server configuration, populated from the
// environment. Services receive it (or a sub-struct) explicitly;
// nothing reads os.Getenv at request time.
type Config struct {
	Port    string `env:"PORT" env-default:"8080"`
	BaseURL string `env:"BASE_URL" env-default:"http://localhost:8080"`

	// No default on purpose: the server refuses to start without it.
	SessionSecret string `env:"SESSION_SECRET"`
	SessionDays   int    `env:"SESSION_DAYS" env-default:"30"`

	// Postgres connection string; POSTGRES_URL wins over DATABASE_URL.
	// With neither set the server falls back to a local sqlite file.
	PostgresURL string `env:"POSTGRES_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" env-default:"/tmp/trivora.db"`

	TemplatesGlob string `env:"TEMPLATES_GLOB" env-default:"web/templates/*.html"`

	Media    Media
	Indexing Indexing
}

type Media struct {
	// "host" posts to an image-hosting HTTP API, "s3" stores in a bucket.
	Backend       string        `env:"MEDIA_BACKEND" env-default:"host"`
	UploadTimeout time.Duration `env:"MEDIA_UPLOAD_TIMEOUT" env-default:"30s"`

	HostEndpoint string `env:"MEDIA_HOST_ENDPOINT"`
	HostAPIKey   string `env:"MEDIA_HOST_API_KEY"`

	S3Region          string `env:"S3_REGION"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
}

type Indexing struct {
	// Endpoint pinged with the URL of each newly published post.
	PingURL     string        `env:"INDEXING_PING_URL"`
	PingTimeout time.Duration `env:"INDEXING_PING_TIMEOUT" env-default:"10s"`

	// Site-ownership verification: the token body is served as plain
	// text at the verification path.
	VerificationPath string `env:"INDEXING_VERIFICATION_PATH" env-default:"/indexing-verification.txt"`
	VerificationBody string `env:"INDEXING_VERIFICATION_BODY"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.SessionDays < 1 || c.SessionDays > 3650 {
		return fmt.Errorf("SESSION_DAYS must be within 1..3650, got %d", c.SessionDays)
	}
	if c.Media.Backend != "host" && c.Media.Backend != "s3" {
		return fmt.Errorf("unknown MEDIA_BACKEND %q", c.Media.Backend)
	}
	return nil
}

// PostgresDSN returns the configured postgres connection string, or ""
// when the sqlite fallback should be used.
func (c *Config) PostgresDSN() string {
	if c.PostgresURL != "" {
		return c.PostgresURL
	}
	return c.DatabaseURL
}
