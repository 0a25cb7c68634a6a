package middleware

import (
	"net/http"
	"strings"

	"github.com/focodev/site/backend/internal/util"
)

const maxLoggedValue = 200

var sensitiveHeaders = map[string]struct{}{
	"authorization":       {},
	"cookie":              {},
	"set-cookie":          {},
	"proxy-authorization": {},
	"x-api-key":           {},
	"x-auth-token":        {},
	"x-forwarded-for":     {},
}

// SanitizeHeaders copies h for logging with credentials redacted and every
// other value stripped of control characters and truncated.
func SanitizeHeaders(h http.Header) map[string][]string {
	if h == nil {
		return nil
	}
	out := make(map[string][]string, len(h))
	for k, vals := range h {
		if _, ok := sensitiveHeaders[strings.ToLower(k)]; ok {
			out[k] = []string{"<redacted>"}
			continue
		}
		clean := make([]string, 0, len(vals))
		for _, v := range vals {
			clean = append(clean, truncate(util.SanitizeForLog(v)))
		}
		out[k] = clean
	}
	return out
}

// SanitizePath drops the query string and control characters from a
// request path before it is logged.
func SanitizePath(p string) string {
	if i := strings.IndexByte(p, '?'); i != -1 {
		p = p[:i]
	}
	return truncate(util.SanitizeForLog(p))
}

func truncate(s string) string {
	if len(s) > maxLoggedValue {
		return s[:maxLoggedValue]
	}
	return s
}
