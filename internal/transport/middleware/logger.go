package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/signroom-backend/pkg/ctxutil"
)

// Logger writes one access log line per request. The query string is never
// logged because signing links carry their token in it.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			ctx := r.Context()
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.status),
				slog.Int64("bytes", rw.written),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			}
			if ip := ctxutil.ClientIPFromCtx(ctx); ip != "" {
				attrs = append(attrs, slog.String("client_ip", ip))
			}
			// Auth runs inside this middleware and stores the operator on a
			// derived request, so it is read back from the recorder.
			if rw.operator != "" {
				attrs = append(attrs, slog.String("operator_id", rw.operator), slog.String("company_id", rw.company))
			}

			logger.LogAttrs(ctx, accessLevel(rw.status), "http.request", attrs...)
		})
	}
}

func accessLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// responseRecorder captures the status and body size of a response.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	written     int64
	wroteHeader bool

	operator, company string
}

func (w *responseRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

func (w *responseRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// noteOperator is called by Auth so the access log can name the caller.
func noteOperator(w http.ResponseWriter, operatorID, companyID string) {
	for w != nil {
		if rw, ok := w.(*responseRecorder); ok {
			rw.operator, rw.company = operatorID, companyID
			return
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return
		}
		w = u.Unwrap()
	}
}
