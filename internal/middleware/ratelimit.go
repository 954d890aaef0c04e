package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerWindow int           // Number of requests allowed per window
	Window            time.Duration // Time window for rate limiting
	KeyPrefix         string        // Redis key prefix
}

// fixedWindow counts requests per client in Redis keys that expire after one window
type fixedWindow struct {
	client redis.Cmdable
	config RateLimitConfig
}

func (f fixedWindow) key(client string) string {
	return f.config.KeyPrefix + ":" + client
}

// hit records one request and returns the count so far in the current window
func (f fixedWindow) hit(ctx context.Context, key string) (int64, error) {
	count, err := f.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := f.client.Expire(ctx, key, f.config.Window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// resetIn is how long until the window of key closes
func (f fixedWindow) resetIn(ctx context.Context, key string) time.Duration {
	ttl, err := f.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		return f.config.Window
	}
	return ttl
}

// RateLimitMiddleware rejects clients that exceed the configured requests per window with 429.
// If Redis is unreachable requests are let through.
func RateLimitMiddleware(redisClient redis.Cmdable, config RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	limiter := fixedWindow{client: redisClient, config: config}
	limit := strconv.Itoa(config.RequestsPerWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// RealIP has already replaced RemoteAddr when proxied
			clientID := clientAddr(r)
			key := limiter.key(clientID)

			count, err := limiter.hit(r.Context(), key)
			if err != nil && count == 0 {
				logger.Error("Failed to increment rate limit counter", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				logger.Warn("Failed to set rate limit expiry", zap.Error(err), zap.String("key", key))
			}

			w.Header().Set("X-RateLimit-Limit", limit)

			if count > int64(config.RequestsPerWindow) {
				ttl := limiter.resetIn(r.Context(), key)

				logger.Warn("Rate limit exceeded",
					zap.String("client_id", clientID),
					zap.Int64("count", count),
					zap.Int("limit", config.RequestsPerWindow),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))

				RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(config.RequestsPerWindow)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr strips the port so every connection from one host shares a bucket
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
