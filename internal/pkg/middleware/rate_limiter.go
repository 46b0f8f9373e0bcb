package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Resource    string        // groups routes sharing one budget
	Limit       int           // requests allowed per window
	Period      time.Duration // window length
}

// RateLimiterMiddleware applies a fixed-window limit per caller (user id when
// authenticated, otherwise client IP). Redis failures let the request through.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			if userID := c.Get(ContextUserID); userID != nil {
				identifier = fmt.Sprintf("%v", userID)
			}
			key := fmt.Sprintf(constants.KeyRateLimit, config.Resource, identifier)
			ctx := c.Request().Context()

			count64, err := config.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("Rate limiter unavailable", logger.String("key", key), logger.Err(err))
				return next(c)
			}
			if count64 == 1 {
				if err := config.RedisClient.Expire(ctx, key, config.Period).Err(); err != nil {
					logger.Warn("Failed to set rate limit window", logger.String("key", key), logger.Err(err))
				}
			}

			count := int(count64)
			remaining := config.Limit - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > config.Limit {
				if ttl, err := config.RedisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				}
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}
