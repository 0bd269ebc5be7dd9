package ratelimit

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bornholm/sidenav/internal/syncx"
	"github.com/bornholm/sidenav/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	rate  rate.Limit
	burst int
	users syncx.Map[string, *rate.Limiter]
}

type GetUserKeyFunc func(r *http.Request) (string, error)

func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	limiter, _ := l.users.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))

	reservation := limiter.Reserve()
	if !reservation.OK() {
		return false, 0
	}

	delay := reservation.Delay()
	if delay == 0 {
		return true, 0
	}

	reservation.Cancel()

	return false, delay
}

func (l *RateLimiter) Middleware(getUserKey GetUserKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userKey, err := getUserKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve user key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			allowed, retryAfter := l.Allow(userKey)
			if !allowed {
				if retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				}

				slog.WarnContext(ctx, "rate limit exceeded", slog.String("key", userKey))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RemoteAddr keys requests by client host.
func RemoteAddr(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr, nil
	}

	return host, nil
}

func New(rate rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate,
		burst: burst,
	}
}
