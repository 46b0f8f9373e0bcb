package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_ConnectionError(t *testing.T) {
	config := models.RedisConfig{
		Host:     "127.0.0.1",
		Port:     1,
		PoolSize: 1,
	}

	client, err := NewRedisClient(config)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestNewRedisClient_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(models.RedisConfig{Host: mr.Host(), Port: atoiPort(t, mr.Port())})

	require.NoError(t, err)
	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestRedisClient_SetNX(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		value          interface{}
		expiration     time.Duration
		mockResult     bool
		mockError      error
		expectedResult bool
		expectedError  bool
	}{
		{
			name:           "Key set successfully",
			key:            "carpool:lock:trip:1",
			value:          "token-1",
			expiration:     time.Second * 30,
			mockResult:     true,
			expectedResult: true,
		},
		{
			name:           "Key already held",
			key:            "carpool:lock:trip:1",
			value:          "token-2",
			expiration:     time.Second * 30,
			mockResult:     false,
			expectedResult: false,
		},
		{
			name:          "Redis error",
			key:           "carpool:lock:trip:2",
			value:         "token-3",
			expiration:    time.Second * 30,
			mockError:     redis.ErrClosed,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			client := &RedisClient{Client: db}

			ctx := context.Background()

			if tt.mockError != nil {
				mock.ExpectSetNX(tt.key, tt.value, tt.expiration).SetErr(tt.mockError)
			} else {
				mock.ExpectSetNX(tt.key, tt.value, tt.expiration).SetVal(tt.mockResult)
			}

			result, err := client.SetNX(ctx, tt.key, tt.value, tt.expiration)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisClient_GetAndDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}
	ctx := context.Background()

	mock.ExpectGet("carpool:lock:booking:1").SetVal("token")
	mock.ExpectGet("carpool:lock:booking:2").RedisNil()
	mock.ExpectDel("carpool:lock:booking:1").SetVal(1)

	value, err := client.Get(ctx, "carpool:lock:booking:1")
	assert.NoError(t, err)
	assert.Equal(t, "token", value)

	_, err = client.Get(ctx, "carpool:lock:booking:2")
	assert.ErrorIs(t, err, redis.Nil)

	assert.NoError(t, client.Delete(ctx, "carpool:lock:booking:1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_DeleteIfEquals(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	ctx := context.Background()

	require.NoError(t, mr.Set("carpool:lock:trip:1", "mine"))

	removed, err := client.DeleteIfEquals(ctx, "carpool:lock:trip:1", "theirs")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.True(t, mr.Exists("carpool:lock:trip:1"))

	removed, err = client.DeleteIfEquals(ctx, "carpool:lock:trip:1", "mine")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, mr.Exists("carpool:lock:trip:1"))

	removed, err = client.DeleteIfEquals(ctx, "carpool:lock:trip:missing", "mine")
	require.NoError(t, err)
	assert.False(t, removed)
}
