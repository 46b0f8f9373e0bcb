package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewRedisLocker(client, time.Second, time.Millisecond, 4*time.Millisecond), mr
}

func assertMutualExclusion(t *testing.T, l Locker) {
	t.Helper()
	const workers = 20
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "trip:shared")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLocalLocker_MutualExclusion(t *testing.T) {
	l := NewLocalLocker()
	assertMutualExclusion(t, l)
	assert.Equal(t, 0, l.size())
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, TripKey(uuid.New()))
	require.NoError(t, err)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := l.Lock(ctx, TripKey(uuid.New()))
		assert.NoError(t, err)
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background(), "booking:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "booking:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // second call is a no-op
	assert.Equal(t, 0, l.size())
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	l, _ := setupRedisLocker(t)
	assertMutualExclusion(t, l)
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	l, mr := setupRedisLocker(t)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "trip:1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("carpool:lock:trip:1"))

	// the lock expires and someone else takes it over
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("carpool:lock:trip:1", "other-holder"))

	unlock()

	value, err := mr.Get("carpool:lock:trip:1")
	require.NoError(t, err)
	assert.Equal(t, "other-holder", value)
}

func TestRedisLocker_ContextCancelled(t *testing.T) {
	l, mr := setupRedisLocker(t)
	require.NoError(t, mr.Set("carpool:lock:booking:1", "held"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := l.Lock(ctx, "booking:1")
	assert.Error(t, err)
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	l, mr := setupRedisLocker(t)
	require.NoError(t, mr.Set("carpool:lock:trip:2", "held"))

	go func() {
		time.Sleep(15 * time.Millisecond)
		mr.Del("carpool:lock:trip:2")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock, err := l.Lock(ctx, "trip:2")
	require.NoError(t, err)
	unlock()
	assert.False(t, mr.Exists("carpool:lock:trip:2"))
}

func TestRedisLocker_RedisErrorIsNotRetried(t *testing.T) {
	l, mr := setupRedisLocker(t)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := l.Lock(ctx, "trip:3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "failed to acquire lock trip:3")
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("7d0b9f4e-4c1a-4d6e-9a43-1c2b3d4e5f60")
	assert.Equal(t, "trip:7d0b9f4e-4c1a-4d6e-9a43-1c2b3d4e5f60", TripKey(id))
	assert.Equal(t, "booking:7d0b9f4e-4c1a-4d6e-9a43-1c2b3d4e5f60", BookingKey(id))
}
