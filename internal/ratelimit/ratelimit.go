// Package ratelimit implements a fixed-window request counter whose state
// travels with the client (typically in a cookie) instead of living on the
// server.
//
// A client that discards its token resets its own budget, so this only
// suits coarse abuse mitigation. Bursts straddling a window boundary can
// reach twice the nominal rate.
package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Counter is the decoded client-held state.
type Counter struct {
	Count       int
	WindowStart time.Time
}

// Decode parses "<count>:<window start unix ms>". Anything malformed reports
// ok=false and must be treated as absent state.
func Decode(raw string) (Counter, bool) {
	countPart, tsPart, found := strings.Cut(raw, ":")
	if !found {
		return Counter{}, false
	}
	count, err := strconv.Atoi(countPart)
	if err != nil || count < 0 {
		return Counter{}, false
	}
	ms, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil || ms <= 0 {
		return Counter{}, false
	}
	return Counter{Count: count, WindowStart: time.UnixMilli(ms)}, true
}

// Encode renders the counter in the form accepted by Decode.
func (c Counter) Encode() string {
	return strconv.Itoa(c.Count) + ":" + strconv.FormatInt(c.WindowStart.UnixMilli(), 10)
}

// Hit records one request against prev and reports whether it exceeds limit.
// The returned counter is valid even when limited so the client keeps an
// accurate count.
func Hit(prev string, limit int, window time.Duration, now time.Time) (Counter, bool) {
	c, ok := Decode(prev)
	if !ok || now.Sub(c.WindowStart) > window {
		c = Counter{Count: 1, WindowStart: now}
	} else {
		c.Count++
	}
	return c, c.Count > limit
}
