// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/logger"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Notification backends.
const (
	BackendTwilio  = "twilio"
	BackendDiscord = "discord"
	BackendNoop    = "noop"
)

// Per-message body limits enforced by the notification backends.
const (
	TwilioMaxMessageLength  = 1600
	DiscordMaxMessageLength = 2000
)

// BackendMessageLimit returns the longest message body the backend accepts,
// or 0 when it has no limit.
func BackendMessageLimit(backend string) int {
	switch backend {
	case BackendTwilio:
		return TwilioMaxMessageLength
	case BackendDiscord:
		return DiscordMaxMessageLength
	default:
		return 0
	}
}

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Search        SearchConfig        `yaml:"search"`
	Store         StoreConfig         `yaml:"store"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Logging       LoggingConfig       `yaml:"logging"`
	Tracing       TracingConfig       `yaml:"tracing"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SearchConfig defines the marketplace search settings.
type SearchConfig struct {
	Terms       []string        `yaml:"terms"`
	BaseURL     string          `yaml:"base_url"`
	Site        string          `yaml:"site"`
	AccessToken string          `yaml:"access_token"`
	PageSize    int             `yaml:"page_size"`
	MaxOffset   int             `yaml:"max_offset"`
	Timeout     time.Duration   `yaml:"timeout"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles calls to the search API. Zero disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// StoreConfig selects and configures the offer store backend.
type StoreConfig struct {
	Driver   string         `yaml:"driver"` // sqlite, postgres, redis
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// SQLiteConfig defines the SQLite database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig defines PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// RedisConfig defines the Redis connection.
type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
}

// NotificationsConfig defines the notification transport and message layout.
type NotificationsConfig struct {
	Backend          string        `yaml:"backend"` // twilio, discord, noop
	Header           string        `yaml:"header"`
	MaxMessageLength int           `yaml:"max_message_length"`
	Twilio           TwilioConfig  `yaml:"twilio"`
	Discord          DiscordConfig `yaml:"discord"`
}

// TwilioConfig defines Twilio Messages API credentials and addresses.
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	From       string `yaml:"from"`
	To         string `yaml:"to"`
	BaseURL    string `yaml:"base_url"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// ScheduleConfig defines how often a reconciliation run happens.
type ScheduleConfig struct {
	Interval   time.Duration `yaml:"interval"`
	RunOnStart *bool         `yaml:"run_on_start"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TracingConfig defines OpenTelemetry trace export over OTLP/gRPC.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // host:port of the OTLP collector
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file in the working directory, if
// present, is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse builds a Config from raw YAML, expanding ${VAR} references.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applySearchDefaults(&cfg.Search)
	applyStoreDefaults(&cfg.Store)
	applyNotificationsDefaults(&cfg.Notifications)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
	applyTracingDefaults(&cfg.Tracing)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		// A manual run can take a while; leave room for it.
		s.WriteTimeout = 5 * time.Minute
	}
}

func applySearchDefaults(s *SearchConfig) {
	if s.BaseURL == "" {
		s.BaseURL = "https://api.mercadolibre.com"
	}
	if s.Site == "" {
		s.Site = "MLU"
	}
	if s.PageSize == 0 {
		s.PageSize = 50
	}
	if s.MaxOffset == 0 {
		s.MaxOffset = 1000
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.RateLimit.PerSecond > 0 && s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = 1
	}
}

func applyStoreDefaults(s *StoreConfig) {
	if s.Driver == "" {
		s.Driver = DriverSQLite
	}
	if s.SQLite.Path == "" {
		s.SQLite.Path = "offers.db"
	}
	if s.Postgres.Port == 0 {
		s.Postgres.Port = 5432
	}
	if s.Postgres.SSLMode == "" {
		s.Postgres.SSLMode = "disable"
	}
	if s.Postgres.PoolSize == 0 {
		s.Postgres.PoolSize = 4
	}
	if s.Redis.KeyPrefix == "" {
		s.Redis.KeyPrefix = "offers"
	}
}

func applyNotificationsDefaults(n *NotificationsConfig) {
	if n.Backend == "" {
		n.Backend = BackendNoop
	}
	if n.Header == "" {
		n.Header = "New offers found:\n"
	}
	if n.MaxMessageLength == 0 {
		n.MaxMessageLength = BackendMessageLimit(n.Backend)
		if n.MaxMessageLength == 0 {
			n.MaxMessageLength = TwilioMaxMessageLength
		}
	}
	if n.Twilio.BaseURL == "" {
		n.Twilio.BaseURL = "https://api.twilio.com"
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.Interval == 0 {
		s.Interval = time.Hour
	}
	if s.RunOnStart == nil {
		on := true
		s.RunOnStart = &on
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = logger.FormatText
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
}

func validate(cfg *Config) error {
	var errs []error

	if len(cfg.Search.Terms) == 0 {
		errs = append(errs, fmt.Errorf("search.terms must contain at least one term"))
	}
	for i, term := range cfg.Search.Terms {
		if term == "" {
			errs = append(errs, fmt.Errorf("search.terms[%d] is empty", i))
		}
	}
	if cfg.Search.PageSize < 1 {
		errs = append(errs, fmt.Errorf("search.page_size must be positive"))
	}
	if cfg.Search.MaxOffset < 0 {
		errs = append(errs, fmt.Errorf("search.max_offset must not be negative"))
	}
	if cfg.Schedule.Interval < time.Minute {
		errs = append(errs, fmt.Errorf("schedule.interval must be at least 1m (got %s)", cfg.Schedule.Interval))
	}
	if !logger.ValidFormat(cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be text or json (got %q)", cfg.Logging.Format))
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be within (0, 1] (got %g)", cfg.Tracing.SampleRatio))
	}

	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateNotifications(&cfg.Notifications)...)

	return errors.Join(errs...)
}

func validateStore(s *StoreConfig) []error {
	var errs []error

	switch s.Driver {
	case DriverSQLite:
		// Path always has a default.
	case DriverPostgres:
		if s.Postgres.Host == "" {
			errs = append(errs, fmt.Errorf("store.postgres.host is required when driver is postgres"))
		}
		if s.Postgres.Name == "" {
			errs = append(errs, fmt.Errorf("store.postgres.name is required when driver is postgres"))
		}
		if s.Postgres.User == "" {
			errs = append(errs, fmt.Errorf("store.postgres.user is required when driver is postgres"))
		}
	case DriverRedis:
		if s.Redis.URL == "" {
			errs = append(errs, fmt.Errorf("store.redis.url is required when driver is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"store.driver must be one of: sqlite, postgres, redis (got %q)", s.Driver,
		))
	}

	return errs
}

func validateNotifications(n *NotificationsConfig) []error {
	var errs []error

	if n.MaxMessageLength < 1 {
		errs = append(errs, fmt.Errorf("notifications.max_message_length must be positive"))
	}
	if limit := BackendMessageLimit(n.Backend); limit > 0 && n.MaxMessageLength > limit {
		errs = append(errs, fmt.Errorf(
			"notifications.max_message_length %d exceeds the %s limit of %d",
			n.MaxMessageLength, n.Backend, limit,
		))
	}

	switch n.Backend {
	case BackendTwilio:
		if n.Twilio.AccountSID == "" || n.Twilio.AuthToken == "" {
			errs = append(errs, fmt.Errorf(
				"notifications.twilio.account_sid and auth_token are required when backend is twilio",
			))
		}
		if n.Twilio.From == "" || n.Twilio.To == "" {
			errs = append(errs, fmt.Errorf(
				"notifications.twilio.from and to are required when backend is twilio",
			))
		}
	case BackendDiscord:
		if n.Discord.WebhookURL == "" {
			errs = append(errs, fmt.Errorf(
				"notifications.discord.webhook_url is required when backend is discord",
			))
		}
	case BackendNoop:
	default:
		errs = append(errs, fmt.Errorf(
			"notifications.backend must be one of: twilio, discord, noop (got %q)", n.Backend,
		))
	}

	return errs
}
