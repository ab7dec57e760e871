package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/shareloop/shareloop-backend/internal/identity"
)

// RateLimit applies a token-bucket limit per caller. Callers are keyed by the
// identity header when present, falling back to client IP, so anonymous
// endpoints are covered too.
func RateLimit(rps, burst int) gin.HandlerFunc {
	var limiters sync.Map

	return func(c *gin.Context) {
		key := c.GetHeader(identity.Header)
		if key == "" {
			key = c.ClientIP()
		}

		v, ok := limiters.Load(key)
		if !ok {
			v, _ = limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		}
		if !v.(*rate.Limiter).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}
