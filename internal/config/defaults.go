package config

import "time"

const defaultPort = 8080

const defaultKafkaTopic = "delivery-mutations"

var defaultBackend = Backend{
	BaseURL:      "http://127.0.0.1:8000",
	Timeout:      10 * time.Second,
	LoginTimeout: 15 * time.Second,
	Retry: Retry{
		MaxAttempts: 3,
		BaseDelay:   150 * time.Millisecond,
		MaxDelay:    time.Second,
	},
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "fieldops",
}

var defaultStore = Store{
	OperationTimeout: 30 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       2,
	Burst:      2,
	TTL:        10 * time.Minute,
	MaxBuckets: 1024,
}

var defaultLog = Log{
	Level:  "info",
	Format: "json",
}

// DefaultPort returns the default agent port.
func DefaultPort() int {
	return defaultPort
}

// DefaultBackend returns the default backend settings.
func DefaultBackend() Backend {
	return defaultBackend
}

// DefaultCredentials returns the default credential storage settings.
func DefaultCredentials() Credentials {
	return Credentials{Backend: CredentialsFile, Path: defaultCredentialsPath()}
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultStore returns the default store settings.
func DefaultStore() Store {
	return defaultStore
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultLog returns the default logging settings.
func DefaultLog() Log {
	return defaultLog
}
