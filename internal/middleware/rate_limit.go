package middleware

import (
	"net/http"
	"sync"
	"time"

	"argent_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit ограничивает число запросов на ключ: :userId из пути,
// иначе IP клиента. Бюджет limit запросов на окно window, при
// превышении отвечаем 429 с заданным текстом.
func RateLimit(message string, limit int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	perSecond := rate.Limit(float64(limit) / window.Seconds())

	return func(c *gin.Context) {
		key := c.Param("userId")
		if key == "" {
			key = c.ClientIP()
		}

		mu.Lock()
		limiter, ok := limiters[key]
		if !ok {
			limiter = rate.NewLimiter(perSecond, limit)
			limiters[key] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			apperrors.HandleError(c, apperrors.New(http.StatusTooManyRequests, message))
			return
		}
		c.Next()
	}
}
