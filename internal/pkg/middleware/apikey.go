package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"
)

// ValidateAPIKey guards service-to-service routes. keys maps a caller name to
// its key; only the named callers are admitted.
func ValidateAPIKey(keys map[string]string, allowedServices ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			for _, service := range allowedServices {
				expected := keys[service]
				if expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1 {
					c.Set("caller_service", service)
					return next(c)
				}
			}

			return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
		}
	}
}
