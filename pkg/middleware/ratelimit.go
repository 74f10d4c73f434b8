package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"salon-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window limiter keyed by client IP and scope.
// Counters live in Redis and are shared by all replicas.
type RateLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	log    *zap.Logger
}

func NewRateLimiter(client redis.Cmdable, limit int, window time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		log:    log.With(zap.String("middleware", "ratelimit")),
	}
}

// Limit guards a route group. A nil limiter lets everything through.
func (rl *RateLimiter) Limit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil || rl.client == nil || rl.limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("ratelimit:%s:%s", scope, ClientIP(r))

			count, ttl, err := rl.hit(r.Context(), key)
			if err != nil {
				// fail open
				rl.log.Warn("Rate limit check failed", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(rl.limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
				utils.ResponseTooManyRequests(w, "Request was throttled. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hit counts one request and returns the count and the time left in the
// window. Any counter found without a TTL gets the window set.
func (rl *RateLimiter) hit(ctx context.Context, key string) (int64, time.Duration, error) {
	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left < 0 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			rl.log.Warn("Failed to set rate limit window", zap.Error(err), zap.String("key", key))
		}
		left = rl.window
	}
	return incr.Val(), left, nil
}

// ClientIP is the remote address without its port. RealIP upstream
// rewrites RemoteAddr from proxy headers.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
