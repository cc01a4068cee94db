package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/pkg/ctxutil"
)

type operatorValidator interface {
	ValidateOperatorToken(token string) (auth.Operator, error)
}

// Auth requires a valid operator JWT and stores the operator and its
// company in the request context.
func Auth(validator operatorValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				unauthenticated(w, "missing bearer token")
				return
			}
			op, err := validator.ValidateOperatorToken(token)
			if err != nil {
				unauthenticated(w, "invalid operator token")
				return
			}
			noteOperator(w, op.ID, op.CompanyID)
			ctx := ctxutil.WithOperator(r.Context(), op.ID, op.CompanyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="signroom"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthenticated","message":"` + message + `"}}`))
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
