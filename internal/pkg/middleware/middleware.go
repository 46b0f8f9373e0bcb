package middleware

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/models"
)

// Config holds configuration for the route guards
type Config struct {
	JWT         models.JWTConfig
	APIKeys     map[string]string
	RateLimit   models.RateLimitConfig
	RedisClient *redis.Client // nil disables rate limiting
}

// Middleware hands out the route guards services attach to their groups
type Middleware struct {
	config Config
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(config Config) *Middleware {
	return &Middleware{config: config}
}

// Authenticated requires a valid bearer token
func (m *Middleware) Authenticated() echo.MiddlewareFunc {
	return JWTAuthMiddleware(m.config.JWT)
}

// Role admits only callers whose token carries one of roles
func (m *Middleware) Role(roles ...models.ActorRole) echo.MiddlewareFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return RequireRole(names...)
}

// APIKeyHandler returns middleware for API key validation
func (m *Middleware) APIKeyHandler(allowedServices ...string) echo.MiddlewareFunc {
	return ValidateAPIKey(m.config.APIKeys, allowedServices...)
}

// RateLimit bounds requests per caller on resource. It passes everything
// through when rate limiting is off or no Redis is configured.
func (m *Middleware) RateLimit(resource string) echo.MiddlewareFunc {
	if !m.config.RateLimit.Enabled || m.config.RedisClient == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: m.config.RedisClient,
		Resource:    resource,
		Limit:       m.config.RateLimit.Requests,
		Period:      m.config.RateLimit.Period,
	})
}
