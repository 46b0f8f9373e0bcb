package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/carpool/internal/pkg/models"
)

// InitConfig loads configPath into the environment when running locally and
// builds the service configuration from environment variables.
func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "carpool")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 10)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 10)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Storage config
	configs.Storage.Driver = GetEnv("STORAGE_DRIVER", "postgres")

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// Lock config
	configs.Lock.Driver = GetEnv("LOCK_DRIVER", "local")
	configs.Lock.TTL = GetEnvAsDuration("LOCK_TTL", 30*time.Second)
	configs.Lock.RetryBackoff = GetEnvAsDuration("LOCK_RETRY_BACKOFF", 20*time.Millisecond)
	configs.Lock.MaxBackoff = GetEnvAsDuration("LOCK_RETRY_MAX_BACKOFF", 320*time.Millisecond)

	// Event bus config
	configs.EventBus.Driver = GetEnv("EVENT_BUS", "nats")

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// API keys
	configs.APIKey.PaymentProvider = GetEnv("API_KEY_PAYMENT_PROVIDER", "")
	configs.APIKey.AdminService = GetEnv("API_KEY_ADMIN_SERVICE", "")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "logs/carpool.log")
	configs.Logger.MaxSize = GetEnvAsInt64("LOG_MAX_SIZE", 100)
	configs.Logger.MaxAge = GetEnvAsInt("LOG_MAX_AGE", 7)
	configs.Logger.MaxBackups = GetEnvAsInt("LOG_MAX_BACKUPS", 3)
	configs.Logger.Compress = GetEnvAsBool("LOG_COMPRESS", true)
	configs.Logger.Type = GetEnv("LOG_TYPE", "stdout")

	// Booking config
	configs.Booking.HoldTimeout = GetEnvAsDuration("BOOKING_HOLD_TIMEOUT", 15*time.Minute)
	configs.Booking.SweepInterval = GetEnvAsDuration("BOOKING_SWEEP_INTERVAL", 30*time.Second)
	configs.Booking.SweepBatch = GetEnvAsInt("BOOKING_SWEEP_BATCH", 100)

	// Trips config
	configs.Trips.CancelWorkers = GetEnvAsInt("TRIP_CANCEL_WORKERS", 8)

	// Payment config
	configs.Payment.Provider = GetEnv("PAYMENT_PROVIDER", "simulated")
	configs.Payment.ProviderURL = GetEnv("PAYMENT_PROVIDER_URL", "")
	configs.Payment.ProviderAPIKey = GetEnv("PAYMENT_PROVIDER_API_KEY", "")
	configs.Payment.ProviderTimeout = GetEnvAsDuration("PAYMENT_PROVIDER_TIMEOUT", 10*time.Second)
	configs.Payment.DeclineAboveCent = GetEnvAsInt64("PAYMENT_DECLINE_ABOVE_CENTS", 0)
	configs.Payment.Currency = GetEnv("PAYMENT_CURRENCY", "USD")

	// Rate limit config
	configs.RateLimit.Enabled = GetEnvAsBool("RATE_LIMIT_ENABLED", false)
	configs.RateLimit.Requests = GetEnvAsInt("RATE_LIMIT_REQUESTS", 60)
	configs.RateLimit.Period = GetEnvAsDuration("RATE_LIMIT_PERIOD", time.Minute)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration accepts Go duration strings ("15m", "30s").
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
