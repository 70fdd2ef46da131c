package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores agent and CLI settings.
type Config struct {
	Port        int
	Backend     Backend
	Credentials Credentials
	DB          DB
	Store       Store
	Kafka       Kafka
	RateLimit   RateLimit
	Pprof       Pprof
	Log         Log
}

// Backend describes the REST backend.
type Backend struct {
	BaseURL      string
	Timeout      time.Duration
	LoginTimeout time.Duration
	Retry        Retry
}

// Retry configures retries of idempotent backend reads.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Credential storage backends.
const (
	CredentialsFile     = "file"
	CredentialsPostgres = "postgres"
	CredentialsMemory   = "memory"
)

// Credentials selects where access and refresh tokens are kept.
type Credentials struct {
	Backend string
	Path    string
}

// DB stores Postgres connection settings for the postgres credential backend.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders a postgres connection URL.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Store configures the delivery store.
type Store struct {
	OperationTimeout time.Duration
}

// Kafka configures mutation events. Empty brokers disable publishing.
type Kafka struct {
	Brokers []string
	Topic   string
}

// RateLimit configures the per-client limiter on mutating agent requests.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof configures the profiling listener. An empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Log configures the logger.
type Log struct {
	Level  string
	Format string
}

// Load reads configuration in order: .env (if present) → environment → flags
// from the process command line.
func Load() (*Config, error) {
	return LoadFrom(pflag.CommandLine, os.Args[1:])
}

// LoadFrom is Load with an explicit flag set and arguments. Positional
// arguments stay available through fs.Args().
func LoadFrom(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	bindFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:        DefaultPort(),
		Backend:     DefaultBackend(),
		Credentials: DefaultCredentials(),
		DB:          DefaultDB(),
		Store:       DefaultStore(),
		Kafka:       Kafka{Topic: defaultKafkaTopic},
		RateLimit:   DefaultRateLimit(),
		Log:         DefaultLog(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.Backend.BaseURL = envString("BACKEND_URL", cfg.Backend.BaseURL)
	if cfg.Backend.Timeout, err = envDuration("BACKEND_TIMEOUT", cfg.Backend.Timeout); err != nil {
		return nil, err
	}
	if cfg.Backend.LoginTimeout, err = envDuration("BACKEND_LOGIN_TIMEOUT", cfg.Backend.LoginTimeout); err != nil {
		return nil, err
	}
	if cfg.Backend.Retry.MaxAttempts, err = envInt("BACKEND_RETRY_MAX_ATTEMPTS", cfg.Backend.Retry.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.Backend.Retry.BaseDelay, err = envDuration("BACKEND_RETRY_BASE_DELAY", cfg.Backend.Retry.BaseDelay); err != nil {
		return nil, err
	}
	if cfg.Backend.Retry.MaxDelay, err = envDuration("BACKEND_RETRY_MAX_DELAY", cfg.Backend.Retry.MaxDelay); err != nil {
		return nil, err
	}

	cfg.Credentials.Backend = envString("CREDENTIALS_BACKEND", cfg.Credentials.Backend)
	cfg.Credentials.Path = envString("CREDENTIALS_PATH", cfg.Credentials.Path)

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}

	if cfg.Store.OperationTimeout, err = envDuration("STORE_OPERATION_TIMEOUT", cfg.Store.OperationTimeout); err != nil {
		return nil, err
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.Topic = envString("KAFKA_TOPIC", cfg.Kafka.Topic)

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
		cfg.RateLimit.Enabled = b
	}
	if v := os.Getenv("RATE_LIMIT_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RATE %q: %w", v, err)
		}
		cfg.RateLimit.Rate = f
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}

	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASSWORD", cfg.Pprof.Pass)

	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envString("LOG_FORMAT", cfg.Log.Format)

	return cfg, nil
}

func bindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Backend.BaseURL, "backend-url", cfg.Backend.BaseURL, "REST backend base URL")
	fs.StringVar(&cfg.Credentials.Backend, "credentials", cfg.Credentials.Backend, "credential storage: file|postgres|memory")
	fs.StringVar(&cfg.Credentials.Path, "credentials-path", cfg.Credentials.Path, "credential file path")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format: json|console")
	fs.StringVar(&cfg.Pprof.Addr, "pprof-addr", cfg.Pprof.Addr, "pprof listen address, empty to disable")
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url: %q", c.Backend.BaseURL)
	}
	switch c.Credentials.Backend {
	case CredentialsFile, CredentialsPostgres, CredentialsMemory:
	default:
		return fmt.Errorf("invalid credentials backend: %q", c.Credentials.Backend)
	}
	if c.Backend.Retry.MaxAttempts < 1 {
		return fmt.Errorf("invalid backend retry attempts: %d", c.Backend.Retry.MaxAttempts)
	}
	if c.Store.OperationTimeout <= 0 {
		return fmt.Errorf("invalid store operation timeout: %s", c.Store.OperationTimeout)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultCredentialsPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "fieldops", "credentials.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.json"
	}
	return filepath.Join(home, ".config", "fieldops", "credentials.json")
}
