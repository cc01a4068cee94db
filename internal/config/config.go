package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Signing   SigningConfig   `yaml:"signing"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// PublicBaseURL is the externally reachable origin of this API, used to
	// build links to locally stored files and the verification URL on seals.
	PublicBaseURL string `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL" env-default:"http://localhost:8080"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"false"`
	// StatementTimeout bounds every statement server-side. Zero disables it.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
}

// AuthConfig holds operator JWT settings. Tokens are minted by the external
// identity provider (or cmd/issue-token locally) and carry a company_id claim.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"signroom"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// Storage backends.
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

// StorageConfig selects and configures the blob store for templates and
// sealed documents.
type StorageConfig struct {
	Backend         string        `yaml:"backend"           env:"STORAGE_BACKEND"           env-default:"local"`
	LocalDir        string        `yaml:"local_dir"         env:"STORAGE_LOCAL_DIR"         env-default:"./data/blobs"`
	S3Bucket        string        `yaml:"s3_bucket"         env:"STORAGE_S3_BUCKET"`
	S3Region        string        `yaml:"s3_region"         env:"STORAGE_S3_REGION"         env-default:"us-east-1"`
	S3Endpoint      string        `yaml:"s3_endpoint"       env:"STORAGE_S3_ENDPOINT"`
	S3UsePathStyle  bool          `yaml:"s3_use_path_style" env:"STORAGE_S3_USE_PATH_STYLE" env-default:"false"`
	S3AccessKeyID   string        `yaml:"s3_access_key_id"  env:"STORAGE_S3_ACCESS_KEY_ID"`
	S3SecretKey     string        `yaml:"s3_secret_key"     env:"STORAGE_S3_SECRET_KEY"`
	PresignTTL      time.Duration `yaml:"presign_ttl"       env:"STORAGE_PRESIGN_TTL"       env-default:"15m"`
	TemplateTimeout time.Duration `yaml:"template_timeout"  env:"STORAGE_TEMPLATE_TIMEOUT"  env-default:"15s"`
	MaxTemplateSize int64         `yaml:"max_template_size" env:"STORAGE_MAX_TEMPLATE_SIZE" env-default:"26214400"`
}

// SigningConfig holds envelope and submission settings.
type SigningConfig struct {
	AccessTokenBytes  int           `yaml:"access_token_bytes"  env:"SIGNING_ACCESS_TOKEN_BYTES"  env-default:"32"`
	SealLease         time.Duration `yaml:"seal_lease"          env:"SIGNING_SEAL_LEASE"          env-default:"2m"`
	MaxRequestBytes   int64         `yaml:"max_request_bytes"   env:"SIGNING_MAX_REQUEST_BYTES"   env-default:"10485760"`
	MaxSignatureBytes int           `yaml:"max_signature_bytes" env:"SIGNING_MAX_SIGNATURE_BYTES" env-default:"2097152"`
	// LegacyRenderWidth is the page width in pixels that legacy absolute
	// field sizes were measured against.
	LegacyRenderWidth float64 `yaml:"legacy_render_width" env:"SIGNING_LEGACY_RENDER_WIDTH" env-default:"800"`
	// LinkBaseURL is the origin of the recipient-facing signing page.
	LinkBaseURL       string `yaml:"link_base_url"       env:"SIGNING_LINK_BASE_URL"       env-default:"http://localhost:3000"`
	TrustForwardedFor bool   `yaml:"trust_forwarded_for" env:"SIGNING_TRUST_FORWARDED_FOR" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request budgets.
type RateLimitConfig struct {
	PublicPerMinute  int `yaml:"public_per_minute"  env:"RATE_LIMIT_PUBLIC_PER_MINUTE"  env-default:"30"`
	CompanyPerMinute int `yaml:"company_per_minute" env:"RATE_LIMIT_COMPANY_PER_MINUTE" env-default:"300"`
}

// AllowedOriginList splits the comma-separated origin setting.
func (c CORSConfig) AllowedOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
