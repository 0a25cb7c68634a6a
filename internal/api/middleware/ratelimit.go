package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/metrics"
	"github.com/focodev/site/backend/internal/ratelimit"
)

var clock = time.Now

// RateLimit counts requests per client in the rl_<bucket> cookie. The
// updated counter is written back on every request, including rejected
// ones.
func RateLimit(bucket string, limit int, window time.Duration, secure bool) gin.HandlerFunc {
	name := "rl_" + bucket
	maxAge := int(window / time.Second)
	return func(c *gin.Context) {
		prev, _ := c.Cookie(name)
		next, limited := ratelimit.Hit(prev, limit, window, clock())

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, next.Encode(), maxAge, "/", "", secure, true)

		if limited {
			metrics.IncRateLimited(bucket)
			GetRequestLogger(c).WithField("bucket", bucket).
				WithField("path", SanitizePath(c.Request.URL.Path)).
				Warn("rate limit exceeded")
			response.Abort(c, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
