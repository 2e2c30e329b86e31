package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	SRS      SRSConfig      `yaml:"srs"`
	Content  ContentConfig  `yaml:"content"`
	CORS     CORSConfig     `yaml:"cors"`
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
	// RateLimit is the per-client request budget per minute. Zero disables it.
	RateLimit int `yaml:"rate_limit" env:"SERVER_RATE_LIMIT" env-default:"120"`
}

// DatabaseConfig holds retention store connection settings.
// Pool settings apply to PostgreSQL only.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"postgres"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout bounds every PostgreSQL statement. Zero leaves the
	// server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
}

// AuthConfig holds access-token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"yukawa"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings. When File is set, records are also
// written there with size-based rotation.
type LogConfig struct {
	Level      string `yaml:"level"         env:"LOG_LEVEL"         env-default:"info"`
	Format     string `yaml:"format"        env:"LOG_FORMAT"        env-default:"json"`
	File       string `yaml:"file"          env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"   env:"LOG_MAX_SIZE_MB"   env-default:"100"`
	MaxBackups int    `yaml:"max_backups"   env:"LOG_MAX_BACKUPS"   env-default:"5"`
	MaxAgeDays int    `yaml:"max_age_days"  env:"LOG_MAX_AGE_DAYS"  env-default:"28"`
	Compress   bool   `yaml:"compress"      env:"LOG_COMPRESS"      env-default:"true"`
}

// SRSConfig holds the dueness and interval model constants, in seconds.
type SRSConfig struct {
	MinOverdueInterval  int64  `yaml:"min_overdue_interval"  env:"SRS_MIN_OVERDUE_INTERVAL"  env-default:"600"`
	RelOverdueThreshold int64  `yaml:"rel_overdue_threshold" env:"SRS_REL_OVERDUE_THRESHOLD" env-default:"3"`
	InitAfterSuccess    int64  `yaml:"init_after_success"    env:"SRS_INIT_AFTER_SUCCESS"    env-default:"60"`
	InitAfterFailure    int64  `yaml:"init_after_failure"    env:"SRS_INIT_AFTER_FAILURE"    env-default:"10"`
	SuccessMultiplier   int64  `yaml:"success_multiplier"    env:"SRS_SUCCESS_MULTIPLIER"    env-default:"2"`
	MaxMultiplier       int64  `yaml:"max_multiplier"        env:"SRS_MAX_MULTIPLIER"        env-default:"5"`
	MinInterval         int64  `yaml:"min_interval"          env:"SRS_MIN_INTERVAL"          env-default:"10"`
	FailureDivisor      int64  `yaml:"failure_divisor"       env:"SRS_FAILURE_DIVISOR"       env-default:"2"`
	FailurePolicy       string `yaml:"failure_policy"        env:"SRS_FAILURE_POLICY"        env-default:"interval"`
	Verbose             bool   `yaml:"verbose"               env:"SRS_LOG_VERBOSE"           env-default:"false"`
}

// ContentConfig locates the per-language catalogs: <dir>/<lang>/build.json
// (or build.yaml).
type ContentConfig struct {
	Dir      string `yaml:"dir"   env:"CONTENT_DIR"   env-default:"./content"`
	LangsRaw string `yaml:"langs" env:"CONTENT_LANGS" env-default:"es"`

	// Langs is parsed from LangsRaw during validation.
	Langs []string `yaml:"-" env:"-"`
}
