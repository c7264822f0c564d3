package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
)

// RateLimit builds a fixed-window limiter keyed by user where authenticated
// and by client IP otherwise. Separate instances per route group give auth,
// chat and general traffic independent budgets.
func RateLimit(requests int, window time.Duration, message string) gin.HandlerFunc {
	limiter := httprate.NewRateLimiter(requests, window)

	return func(c *gin.Context) {
		key := c.ClientIP()
		if uid := c.GetUint("userID"); uid != 0 {
			key = "user:" + strconv.FormatUint(uint64(uid), 10)
		}

		if limiter.OnLimit(c.Writer, c.Request, key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}
		c.Next()
	}
}
