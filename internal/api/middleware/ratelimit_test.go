package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focodev/site/backend/internal/ratelimit"
)

func limitedRouter(limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit("auth", limit, time.Minute, false), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func rlCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "rl_auth" {
			return c
		}
	}
	t.Fatalf("rl_auth cookie not set")
	return nil
}

func TestRateLimit_EleventhRequestLimited(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock = func() time.Time { return fixed }
	t.Cleanup(func() { clock = time.Now })

	r := limitedRouter(10)
	var cookie *http.Cookie
	for i := 1; i <= 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		cookie = rlCookie(t, w)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

		if i <= 10 {
			assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), `"ok":false`))
		}
	}

	c, ok := ratelimit.Decode(cookie.Value)
	require.True(t, ok)
	assert.Equal(t, 11, c.Count)
	assert.Equal(t, fixed.UnixMilli(), c.WindowStart.UnixMilli())
}

func TestRateLimit_WindowResets(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock = func() time.Time { return start.Add(61 * time.Second) }
	t.Cleanup(func() { clock = time.Now })

	prev := ratelimit.Counter{Count: 50, WindowStart: start}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "rl_auth", Value: prev})
	w := httptest.NewRecorder()
	limitedRouter(10).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	c, ok := ratelimit.Decode(rlCookie(t, w).Value)
	require.True(t, ok)
	assert.Equal(t, 1, c.Count)
}

func TestRateLimit_MalformedCookieResets(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "rl_auth", Value: "garbage"})
	w := httptest.NewRecorder()
	limitedRouter(1).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
