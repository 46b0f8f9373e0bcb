package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Lock      LockConfig
	EventBus  EventBusConfig
	NATS      NATSConfig
	NSQ       NSQConfig
	JWT       JWTConfig
	APIKey    APIKeyConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
	Booking   BookingConfig
	Trips     TripsConfig
	Payment   PaymentConfig
	RateLimit RateLimitConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// StorageConfig selects the persistence driver: "postgres" or "memory"
type StorageConfig struct {
	Driver string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// LockConfig selects the per-key lock driver: "local" or "redis"
type LockConfig struct {
	Driver       string
	TTL          time.Duration
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
}

// EventBusConfig selects where domain events go: "nats", "nsq" or "none"
type EventBusConfig struct {
	Driver string
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ daemon configuration
type NSQConfig struct {
	Address string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// APIKeyConfig holds keys accepted on internal service-to-service routes
type APIKeyConfig struct {
	PaymentProvider string
	AdminService    string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}

// BookingConfig contains booking state machine configuration
type BookingConfig struct {
	HoldTimeout   time.Duration // pending bookings older than this expire
	SweepInterval time.Duration
	SweepBatch    int
}

// TripsConfig contains trip lifecycle configuration
type TripsConfig struct {
	CancelWorkers int // concurrent per-booking cancellations during a trip cancel
}

// PaymentConfig contains payment capability configuration
type PaymentConfig struct {
	Provider         string // "simulated" or "http"
	ProviderURL      string
	ProviderAPIKey   string
	ProviderTimeout  time.Duration
	DeclineAboveCent int64 // simulated provider declines charges above this amount, 0 disables
	Currency         string
}

// RateLimitConfig bounds mutating requests per caller
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Period   time.Duration
}
