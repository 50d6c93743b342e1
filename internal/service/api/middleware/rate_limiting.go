package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ipRateLimiter 클라이언트 IP별 rate.Limiter를 관리합니다.
//
// IP는 한 번 추가되면 서버 재시작 전까지 유지됩니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// getLimiter ip의 Limiter를 반환합니다. 없으면 새로 생성합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// 다른 고루틴이 먼저 생성했을 수 있습니다.
	if limiter, exists = i.limiters[ip]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(i.limit, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimiting 클라이언트 IP별로 window 동안 최대 maxRequests개의 요청을 허용하는 미들웨어를 반환합니다.
//
// Token Bucket의 크기는 maxRequests이고 토큰은 window/maxRequests 간격으로 채워집니다.
// 제한을 초과하면 Retry-After 헤더와 함께 429 응답을 반환합니다.
//
// window나 maxRequests가 0 이하이면 panic이 발생합니다.
func RateLimiting(window time.Duration, maxRequests int) echo.MiddlewareFunc {
	if window <= 0 {
		panic("[RateLimiting] window는 양수여야 합니다")
	}
	if maxRequests <= 0 {
		panic("[RateLimiting] maxRequests는 양수여야 합니다")
	}

	interval := window / time.Duration(maxRequests)
	limiters := newIPRateLimiter(rate.Every(interval), maxRequests)

	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(interval.Seconds()))))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiters.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(constants.HeaderRetryAfter, retryAfter)

				return echo.NewHTTPError(http.StatusTooManyRequests, constants.ErrMsgTooManyRequests)
			}

			return next(c)
		}
	}
}
