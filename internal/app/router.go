package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/internal/config"
	"github.com/heartmarshall/signroom-backend/internal/transport/middleware"
	"github.com/heartmarshall/signroom-backend/internal/transport/rest"
)

type operatorValidator interface {
	ValidateOperatorToken(token string) (auth.Operator, error)
}

// Handlers groups everything the router mounts. Files is nil unless blobs
// are stored locally.
type Handlers struct {
	Signing   *rest.SigningHandler
	Envelopes *rest.EnvelopeHandler
	Health    *rest.HealthHandler
	Files     *rest.FilesHandler
}

// NewRouter builds the HTTP handler tree.
//
// Every request passes through client resolution, request ids, access
// logging, panic recovery and CORS. The public signing surface is limited
// per IP and capped in body size; the company API requires an operator
// token.
func NewRouter(cfg *config.Config, logger *slog.Logger, h Handlers, validator operatorValidator, rl *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	public := middleware.Chain(
		rl.Limit("public", cfg.RateLimit.PublicPerMinute),
		middleware.BodyLimit(cfg.Signing.MaxRequestBytes),
	)
	mux.Handle("POST /v1/callable/getPublicEnvelope", public(http.HandlerFunc(h.Signing.GetPublicEnvelope)))
	mux.Handle("POST /v1/callable/submitPublicEnvelope", public(http.HandlerFunc(h.Signing.SubmitPublicEnvelope)))
	mux.Handle("GET /v1/public/envelopes/{companyId}/{requestId}", public(http.HandlerFunc(h.Signing.PublicEnvelope)))
	mux.Handle("GET /v1/public/verify/{companyId}/{requestId}", public(http.HandlerFunc(h.Signing.Verify)))

	company := middleware.Chain(
		middleware.Auth(validator),
		rl.Limit("company", cfg.RateLimit.CompanyPerMinute),
		middleware.BodyLimit(cfg.Signing.MaxRequestBytes),
	)
	mux.Handle("POST /v1/envelopes", company(http.HandlerFunc(h.Envelopes.Create)))
	mux.Handle("POST /v1/envelopes/templates", middleware.Chain(
		middleware.Auth(validator),
		rl.Limit("company", cfg.RateLimit.CompanyPerMinute),
		middleware.BodyLimit(cfg.Storage.MaxTemplateSize),
	)(http.HandlerFunc(h.Envelopes.UploadTemplate)))
	mux.Handle("GET /v1/envelopes", company(http.HandlerFunc(h.Envelopes.List)))
	mux.Handle("GET /v1/envelopes/{requestId}", company(http.HandlerFunc(h.Envelopes.Get)))
	mux.Handle("POST /v1/envelopes/{requestId}/dispatch", company(http.HandlerFunc(h.Envelopes.Dispatch)))
	mux.Handle("POST /v1/envelopes/{requestId}/rotate-token", company(http.HandlerFunc(h.Envelopes.RotateToken)))
	mux.Handle("GET /v1/envelopes/{requestId}/download", company(http.HandlerFunc(h.Envelopes.Download)))
	mux.Handle("GET /v1/envelopes/{requestId}/history", company(http.HandlerFunc(h.Envelopes.History)))

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	if h.Files != nil {
		mux.HandleFunc("GET /files/{path...}", h.Files.Serve)
	}

	return middleware.Chain(
		middleware.ClientIP(cfg.Signing.TrustForwardedFor),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
