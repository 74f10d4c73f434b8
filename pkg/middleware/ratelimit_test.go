package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func TestRateLimiter_Throttles(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := NewRateLimiter(client, 2, time.Minute, zap.NewNop())
	handler := limiter.Limit("bookings")(okHandler())

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusCreated, send("10.0.0.1:5001").Code)

	throttled := send("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, throttled.Code)
	assert.NotEmpty(t, throttled.Header().Get("Retry-After"))

	// other clients have their own window
	assert.Equal(t, http.StatusCreated, send("10.0.0.2:5000").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, send("10.0.0.1:5003").Code)
}

func TestRateLimiter_RestoresMissingWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	// counter stranded without a TTL
	key := "ratelimit:auth:10.0.0.9"
	require.NoError(t, mr.Set(key, "50"))

	handler := NewRateLimiter(client, 2, time.Minute, zap.NewNop()).Limit("auth")(okHandler())
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.9:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, send())
	assert.Greater(t, mr.TTL(key), time.Duration(0))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, send())
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	handler := NewRateLimiter(client, 1, time.Minute, zap.NewNop()).Limit("contacts")(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contacts", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestRateLimiter_NilIsDisabled(t *testing.T) {
	var limiter *RateLimiter
	rec := httptest.NewRecorder()
	limiter.Limit("reviews")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
