package config

import "fmt"

// Default configuration values.
const (
	defaultServiceName  = "profile-intake"
	defaultServicePort  = 8096
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"
	defaultLoggingFmt   = "json"
	defaultDBPort       = 5432
	defaultDBName       = "profile_intake"
	defaultDBSSLMode    = "disable"

	defaultShareMaxRequests  = 5
	defaultShareWindowSecs   = 600
	defaultMaxTrackedClients = 10000

	defaultIdentityTimeoutSecs = 10
)

// Config holds the application configuration.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Database   DatabaseConfig   `yaml:"database"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Moderation ModerationConfig `yaml:"moderation"`
	Identity   IdentityConfig   `yaml:"identity"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"PROFILE_INTAKE_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"           yaml:"debug"`
	// AllowLocalFallback permits accepting submissions without a configured
	// database. Disable in production so misconfiguration fails loudly.
	AllowLocalFallback bool `env:"PROFILE_INTAKE_ALLOW_LOCAL_FALLBACK" yaml:"allow_local_fallback"`
}

// DatabaseConfig holds PostgreSQL configuration for the two credential
// tiers. The public role is used for intake writes and approved reads; the
// admin role bypasses row policies for moderation queries and updates.
type DatabaseConfig struct {
	Host          string `env:"PROFILE_INTAKE_DB_HOST"           yaml:"host"`
	Port          int    `env:"PROFILE_INTAKE_DB_PORT"           yaml:"port"`
	User          string `env:"PROFILE_INTAKE_DB_USER"           yaml:"user"`
	Password      string `env:"PROFILE_INTAKE_DB_PASSWORD"       yaml:"password"`
	AdminUser     string `env:"PROFILE_INTAKE_DB_ADMIN_USER"     yaml:"admin_user"`
	AdminPassword string `env:"PROFILE_INTAKE_DB_ADMIN_PASSWORD" yaml:"admin_password"`
	Database      string `env:"PROFILE_INTAKE_DB_NAME"           yaml:"database"`
	SSLMode       string `env:"PROFILE_INTAKE_DB_SSLMODE"        yaml:"sslmode"`
}

// Configured reports whether the public-tier connection is usable.
func (d *DatabaseConfig) Configured() bool {
	return d.Host != "" && d.User != ""
}

// AdminConfigured reports whether the elevated credential tier is usable.
func (d *DatabaseConfig) AdminConfigured() bool {
	return d.Host != "" && d.AdminUser != ""
}

// DSN returns the public-tier PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return dsn(d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

// AdminDSN returns the elevated-tier PostgreSQL connection string.
func (d *DatabaseConfig) AdminDSN() string {
	return dsn(d.Host, d.Port, d.AdminUser, d.AdminPassword, d.Database, d.SSLMode)
}

func dsn(host string, port int, user, password, database, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode,
	)
}

// RateLimitConfig holds submission rate limiting configuration.
type RateLimitConfig struct {
	ShareMaxRequests   int `env:"PROFILE_INTAKE_SHARE_MAX_REQUESTS" yaml:"share_max_requests"`
	ShareWindowSeconds int `env:"PROFILE_INTAKE_SHARE_WINDOW_SECS"  yaml:"share_window_seconds"`
	MaxTrackedClients  int `yaml:"max_tracked_clients"`
}

// ModerationConfig holds the moderator allow-list.
type ModerationConfig struct {
	ModeratorEmails []string `env:"MODERATOR_EMAILS" yaml:"moderator_emails"`
}

// IdentityConfig holds the hosted auth service used to resolve bearer tokens.
type IdentityConfig struct {
	BaseURL        string `env:"AUTH_BASE_URL" yaml:"base_url"`
	APIKey         string `env:"AUTH_API_KEY"  yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Configured reports whether bearer tokens can be resolved.
func (i *IdentityConfig) Configured() bool {
	return i.BaseURL != "" && i.APIKey != ""
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRateLimitDefaults(&cfg.RateLimit)
	setIdentityDefaults(&cfg.Identity)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	// Host and users intentionally default to empty: an unset database means
	// the repository runs in local-fallback mode.
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.ShareMaxRequests == 0 {
		rl.ShareMaxRequests = defaultShareMaxRequests
	}
	if rl.ShareWindowSeconds == 0 {
		rl.ShareWindowSeconds = defaultShareWindowSecs
	}
	if rl.MaxTrackedClients == 0 {
		rl.MaxTrackedClients = defaultMaxTrackedClients
	}
}

func setIdentityDefaults(id *IdentityConfig) {
	if id.TimeoutSeconds == 0 {
		id.TimeoutSeconds = defaultIdentityTimeoutSecs
	}
}

func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
	if log.Format == "" {
		log.Format = defaultLoggingFmt
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Database.AdminConfigured() && c.Database.AdminPassword == "" {
		return &ValidationError{
			Field:   "database.admin_password",
			Message: "is required when admin_user is set",
		}
	}
	if c.RateLimit.ShareMaxRequests < 1 {
		return &ValidationError{
			Field:   "rate_limit.share_max_requests",
			Message: "must be at least 1",
		}
	}
	return nil
}
