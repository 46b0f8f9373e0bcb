package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Expiration: 60,
		Issuer:     "carpool-test",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	tests := []struct {
		name string
		role models.ActorRole
	}{
		{name: "Rider token", role: models.ActorRider},
		{name: "Driver token", role: models.ActorDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			cfg := getTestConfig()

			tokenString, expiresAt, err := GenerateToken(userID, tt.role, cfg)
			require.NoError(t, err)
			assert.NotEmpty(t, tokenString)
			assert.Greater(t, expiresAt, time.Now().Unix())

			claims, err := ValidateToken(tokenString, cfg.Secret)
			require.NoError(t, err)
			assert.Equal(t, userID.String(), claims["user_id"])
			assert.Equal(t, string(tt.role), claims["role"])
			assert.Equal(t, cfg.Issuer, claims["iss"])
		})
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	cfg := getTestConfig()
	valid, _, err := GenerateToken(uuid.New(), models.ActorRider, cfg)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	expiredString, err := expired.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": uuid.NewString()})
	noneString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "Wrong secret", token: valid, secret: "other-secret"},
		{name: "Expired", token: expiredString, secret: cfg.Secret},
		{name: "Malformed", token: "not.a.token", secret: cfg.Secret},
		{name: "Unsigned", token: noneString, secret: cfg.Secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
