package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP derives the rate-limit identity from the request's source address.
// Proxy headers win over the socket address so that all clients behind the
// same reverse proxy are not pooled into one quota.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// first hop is the originating client
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
