package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgRateLimited        = "слишком много запросов, повторите позже"
	msgRateLimiterFailure = "ограничитель запросов недоступен"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter ограничение частоты запросов по IP клиента с фиксированным окном в Redis
type RateLimiter struct {
	rdb      redis.Scripter
	limit    int
	window   time.Duration
	prefix   string
	failOpen bool
	logger   Logger
}

// NewRateLimiter создает ограничитель. При failOpen ошибки Redis пропускают запрос
func NewRateLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string, failOpen bool, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		prefix:   prefix,
		failOpen: failOpen,
		logger:   logger,
	}
}

// Middleware возвращает 429 при превышении лимита
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.prefix + ":" + clientIP(r)

		count, err := rl.incr(r.Context(), key)
		if err != nil {
			if rl.failOpen {
				rl.logger.Warn("%s %s - Rate limiter unavailable, passing request: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}
			rl.logger.Error("%s %s - Rate limiter unavailable: %v", r.Method, r.URL.Path, err)
			handlers.RespondServiceUnavailable(w, msgRateLimiterFailure)
			return
		}

		if count > int64(rl.limit) {
			rl.logger.Warn("%s %s - Rate limit exceeded: key=%s, count=%d", r.Method, r.URL.Path, key, count)
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("ratelimit: unexpected script result type %T", res)
	}
}

// clientIP первый адрес из X-Forwarded-For, иначе RemoteAddr без порта
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
