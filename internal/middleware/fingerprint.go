// Package middleware holds the gin middleware for the intake API.
package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ipHeaderCandidates are checked in order for the client address. The
// first proxy-injected header wins over the socket address.
var ipHeaderCandidates = []string{
	"CF-Connecting-IP",
	"X-Real-IP",
	"X-Forwarded-For",
	"Fly-Client-IP",
}

const maxFingerprintToken = 160

func sanitizeToken(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxFingerprintToken {
		trimmed = trimmed[:maxFingerprintToken]
	}
	return trimmed
}

// RequestIP extracts the client address from proxy headers, falling back to
// the socket peer.
func RequestIP(r *http.Request) string {
	for _, header := range ipHeaderCandidates {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		primary, _, _ := strings.Cut(value, ",")
		if token := sanitizeToken(primary); token != "" {
			return token
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return sanitizeToken(r.RemoteAddr)
	}
	return host
}

// ClientFingerprint keys rate limiting and analytics on the client address
// and user agent combined.
func ClientFingerprint(r *http.Request) string {
	ip := RequestIP(r)
	if ip == "" {
		ip = "unknown-ip"
	}
	ua := sanitizeToken(r.Header.Get("User-Agent"))
	if ua == "" {
		ua = "unknown-ua"
	}
	return ip + "|" + ua
}
