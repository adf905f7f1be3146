// Package config loads service configuration with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"facets_backend/internal/platform/db"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Database   DatabaseConfig
	Redis      RedisConfig
	Pagination PaginationConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
	// MountPrefix is where the examples resource is mounted, e.g. "/api".
	MountPrefix string
	Swagger     bool
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	Instance       string
	SQLitePath     string
	SSLMode        string
	ConnectTimeout time.Duration
	RunMigrations  bool
}

type RedisConfig struct {
	Enabled   bool
	Addr      string
	Password  string
	DB        int
	CacheTTL  time.Duration
	Namespace string
}

type PaginationConfig struct {
	PageSize    int
	MaxPageSize int
}

type AuthConfig struct {
	// JWTSecret enables bearer-token auth on mutating routes when set.
	JWTSecret string
	TokenTTL  time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// legacyEnv maps keys to the flat environment variable names used by
// earlier deployments, in addition to the DATABASE_USER style names.
var legacyEnv = map[string]string{
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.instance":       "INSTANCE_CONNECTION_NAME",
	"database.run_migrations": "RUN_MIGRATIONS",
	"auth.jwt_secret":         "JWT_SECRET",
	"redis.password":          "REDIS_PASSWORD",
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/facets/
// unless path points at a specific file.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/facets/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = v.GetString("environment.name")

	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.MountPrefix = normalizePrefix(v.GetString("http_server.mount_prefix"))
	cfg.HTTPServer.Swagger = v.GetBool("http_server.swagger")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Encoding = v.GetString("logger.encoding")

	cfg.Database.Driver = strings.ToLower(v.GetString("database.driver"))
	cfg.Database.Host = v.GetString("database.host")
	cfg.Database.Port = v.GetString("database.port")
	cfg.Database.User = v.GetString("database.user")
	cfg.Database.Password = v.GetString("database.password")
	cfg.Database.Name = v.GetString("database.name")
	cfg.Database.Instance = v.GetString("database.instance")
	cfg.Database.SQLitePath = v.GetString("database.sqlite_path")
	cfg.Database.SSLMode = v.GetString("database.sslmode")
	cfg.Database.ConnectTimeout = v.GetDuration("database.connect_timeout")
	if v.IsSet("database.run_migrations") {
		cfg.Database.RunMigrations = v.GetBool("database.run_migrations")
	} else {
		// SQLiteは開発用途のため既定でテーブルを作成します
		cfg.Database.RunMigrations = cfg.Database.Driver == "sqlite"
	}

	cfg.Redis.Enabled = v.GetBool("redis.enabled")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.CacheTTL = v.GetDuration("redis.cache_ttl")
	cfg.Redis.Namespace = v.GetString("redis.namespace")

	cfg.Pagination.PageSize = v.GetInt("pagination.page_size")
	cfg.Pagination.MaxPageSize = v.GetInt("pagination.max_page_size")

	cfg.Auth.JWTSecret = v.GetString("auth.jwt_secret")
	cfg.Auth.TokenTTL = v.GetDuration("auth.token_ttl")

	cfg.RateLimit.RPS = v.GetFloat64("rate_limit.rps")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.mount_prefix", "/api")
	v.SetDefault("http_server.swagger", true)
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.encoding", "console")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "facets")
	v.SetDefault("database.instance", "")
	v.SetDefault("database.sqlite_path", "facets.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.connect_timeout", "60s")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "5m")
	v.SetDefault("redis.namespace", "examples")

	v.SetDefault("pagination.page_size", 20)
	v.SetDefault("pagination.max_page_size", 100)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 20)
}

// normalizePrefix returns "" for the root and "/x" (no trailing slash) otherwise.
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("database.driver: unsupported value %q", c.Database.Driver)
	}
	switch c.HTTPServer.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("http_server.mode: unsupported value %q", c.HTTPServer.Mode)
	}
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port: out of range: %d", c.HTTPServer.Port)
	}
	if c.Pagination.PageSize < 0 {
		return fmt.Errorf("pagination.page_size: must not be negative")
	}
	if c.Pagination.MaxPageSize > 0 && c.Pagination.PageSize > c.Pagination.MaxPageSize {
		return fmt.Errorf("pagination.page_size: exceeds max_page_size")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps: must not be negative")
	}
	if c.Auth.JWTSecret != "" && c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl: must be positive")
	}
	return nil
}

// Summary returns non-secret settings for display.
func (c *Config) Summary() map[string]string {
	return map[string]string{
		"environment":     c.Environment.Name,
		"http.port":       fmt.Sprint(c.HTTPServer.Port),
		"http.prefix":     c.HTTPServer.MountPrefix,
		"database.driver": c.Database.Driver,
		"redis.enabled":   fmt.Sprint(c.Redis.Enabled),
		"auth.enabled":    fmt.Sprint(c.Auth.JWTSecret != ""),
		"rate_limit.rps":  fmt.Sprint(c.RateLimit.RPS),
		"page_size":       fmt.Sprint(c.Pagination.PageSize),
	}
}

// DB converts the section into the platform/db connection config.
func (d DatabaseConfig) DB() db.Config {
	return db.Config{
		Driver:       d.Driver,
		User:         d.User,
		Password:     d.Password,
		Name:         d.Name,
		Host:         d.Host,
		Port:         d.Port,
		InstanceName: d.Instance,
		SQLitePath:   d.SQLitePath,
		SSLMode:      d.SSLMode,
	}
}
