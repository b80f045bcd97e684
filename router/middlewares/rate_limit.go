package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/traPtitech/pinboard/router/extension/herror"
)

const accessLogExpiresIn = 3 * time.Minute

type accessLog struct {
	rejectedInPeak    int
	lastAccessedAt    time.Time
	lastPeakStartedAt time.Time
	lastAllowed       bool
}

func (l *accessLog) add(allowed bool, now time.Time) {
	if !allowed {
		if l.lastAllowed || l.rejectedInPeak == 0 {
			l.rejectedInPeak = 0
			l.lastPeakStartedAt = now
		}
		l.rejectedInPeak++
	}
	l.lastAllowed = allowed
	l.lastAccessedAt = now
}

type accessLogStore struct {
	sync.Mutex
	logs      map[string]*accessLog
	lastClean time.Time
}

func (s *accessLogStore) add(ip string, allowed bool) accessLog {
	s.Lock()
	defer s.Unlock()

	now := time.Now()
	if now.Sub(s.lastClean) > accessLogExpiresIn {
		for id, l := range s.logs {
			if now.Sub(l.lastAccessedAt) > accessLogExpiresIn {
				delete(s.logs, id)
			}
		}
		s.lastClean = now
	}

	l, ok := s.logs[ip]
	if !ok {
		l = &accessLog{lastAllowed: true}
		s.logs[ip] = l
	}
	l.add(allowed, now)
	return *l
}

// RateLimiter IPアドレスごとにリクエストレートを制限するミドルウェア
//
// 制限を超えたリクエストは429を返し、ピーク毎の拒否回数をログに記録します
func RateLimiter(r rate.Limit, burst int, logger *zap.Logger) echo.MiddlewareFunc {
	var (
		limiter = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      r,
			Burst:     burst,
			ExpiresIn: accessLogExpiresIn,
		})
		logs = &accessLogStore{logs: map[string]*accessLog{}}
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, err := limiter.Allow(ip)
			if err != nil {
				return herror.InternalServerError(err)
			}

			l := logs.add(ip, ok)
			if !ok {
				logger.Warn(
					"Exceeded rate limit.",
					zap.String("path", c.Path()),
					zap.String("ip", ip),
					zap.Int("rejectedInPeak", l.rejectedInPeak),
					zap.Duration("peakDuration", l.lastAccessedAt.Sub(l.lastPeakStartedAt)),
				)
				return herror.HTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
