package webserver

import (
	"net/http"
	"strconv"
	"time"
)

// CachePolicy describes the client-side caching headers attached to a successful file response.
type CachePolicy struct {
	// Value for the `Cache-Control` header.
	CacheControl string

	// Response lifetime; when positive an `Expires` header is attached too.
	Lifetime time.Duration
}

// Apply sets the policy headers. Error responses never go through here:
// caching headers are attached to served files only.
func (p CachePolicy) Apply(h http.Header, now time.Time) {
	if p.CacheControl != "" {
		h.Set("Cache-Control", p.CacheControl)
	}

	if p.Lifetime > 0 {
		h.Set("Expires", now.Add(p.Lifetime).UTC().Format(http.TimeFormat))
	}
}

// noCachePolicy forbids any caching of the response. Application pages (and
// the index document in particular) change on every deploy, so clients must
// always revalidate.
func noCachePolicy() CachePolicy {
	return CachePolicy{CacheControl: "no-store, no-cache, must-revalidate"}
}

// staticCachePolicy permits shared caching of fingerprinted build assets for
// the configured lifetime (one year unless overridden).
func (ws *WebServer) staticCachePolicy() CachePolicy {
	maxAge := ws.Settings.StaticMaxAge

	return CachePolicy{
		CacheControl: "public, max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10),
		Lifetime:     maxAge,
	}
}

// isStaticPath reports whether the static prefix rule applies to the cleaned
// request path. The prefix rule wins over the default rule whenever it
// matches.
func (ws *WebServer) isStaticPath(urlPath string) bool {
	prefix := ws.Settings.StaticPrefix

	return len(urlPath) >= len(prefix) && urlPath[:len(prefix)] == prefix
}
