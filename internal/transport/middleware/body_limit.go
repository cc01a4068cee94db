package middleware

import "net/http"

// BodyLimit caps request bodies at maxBytes. Declared lengths over the cap
// are refused up front; streamed bodies fail on read and the handler
// answers with its own decode error. Returns nil for maxBytes <= 0.
func BodyLimit(maxBytes int64) Middleware {
	if maxBytes <= 0 {
		return nil
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":{"code":"invalid-argument","message":"request body too large"}}`))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
