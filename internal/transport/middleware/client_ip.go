package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/heartmarshall/signroom-backend/pkg/ctxutil"
)

// ClientIP resolves the caller's address and user agent once and stores
// them in the request context. X-Forwarded-For is honoured only when the
// server runs behind a trusted proxy; the left-most entry wins.
func ClientIP(trustForwardedFor bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r.RemoteAddr)
			if trustForwardedFor {
				if fwd := forwardedIP(r.Header.Get("X-Forwarded-For")); fwd != "" {
					ip = fwd
				}
			}
			ctx := ctxutil.WithClient(r.Context(), ip, r.UserAgent())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func remoteIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func forwardedIP(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first = strings.TrimSpace(first)
	if net.ParseIP(first) == nil {
		return ""
	}
	return first
}
