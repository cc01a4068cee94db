package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/service/signing"
)

type signingService interface {
	GetPublicEnvelope(ctx context.Context, input signing.PublicEnvelopeInput) (*domain.EnvelopeView, error)
	SubmitPublicEnvelope(ctx context.Context, input signing.SubmitInput) (*signing.SubmitResult, error)
	VerifySeal(ctx context.Context, key domain.EnvelopeKey) (*signing.Verification, error)
}

// SigningHandler serves the anonymous recipient endpoints.
type SigningHandler struct {
	svc signingService
	log *slog.Logger
}

// NewSigningHandler creates a SigningHandler.
func NewSigningHandler(svc signingService, logger *slog.Logger) *SigningHandler {
	return &SigningHandler{svc: svc, log: logger.With("handler", "signing")}
}

// callableRequest is the request envelope of callable functions.
type callableRequest[T any] struct {
	Data *T `json:"data"`
}

type callableResponse struct {
	Result any `json:"result"`
}

type linkRequest struct {
	CompanyID   string `json:"companyId"`
	RequestID   string `json:"requestId"`
	AccessToken string `json:"accessToken"`
}

type auditDataRequest struct {
	IP        string      `json:"ip"`
	UserAgent string      `json:"userAgent"`
	Timestamp *clientTime `json:"timestamp"`
}

type submitRequest struct {
	linkRequest
	FieldValues map[string]any   `json:"fieldValues"`
	AuditData   auditDataRequest `json:"auditData"`
}

type submitResponse struct {
	Success  bool      `json:"success"`
	SignedAt time.Time `json:"signedAt"`
}

// GetPublicEnvelope handles POST /v1/callable/getPublicEnvelope.
func (h *SigningHandler) GetPublicEnvelope(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCallable[linkRequest](r)
	if err != nil {
		writeServiceError(w, r, h.log, err, false)
		return
	}

	view, err := h.svc.GetPublicEnvelope(r.Context(), signing.PublicEnvelopeInput{
		CompanyID:   req.CompanyID,
		RequestID:   req.RequestID,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err, false)
		return
	}

	writeJSON(w, http.StatusOK, callableResponse{Result: toPublicEnvelopeDTO(view)})
}

// SubmitPublicEnvelope handles POST /v1/callable/submitPublicEnvelope.
func (h *SigningHandler) SubmitPublicEnvelope(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCallable[submitRequest](r)
	if err != nil {
		writeServiceError(w, r, h.log, err, false)
		return
	}

	res, err := h.svc.SubmitPublicEnvelope(r.Context(), signing.SubmitInput{
		CompanyID:   req.CompanyID,
		RequestID:   req.RequestID,
		AccessToken: req.AccessToken,
		FieldValues: req.FieldValues,
		AuditData: domain.AuditData{
			IP:        req.AuditData.IP,
			UserAgent: req.AuditData.UserAgent,
			Timestamp: req.AuditData.Timestamp.ptr(),
		},
	})
	if err != nil {
		writeServiceError(w, r, h.log, err, false)
		return
	}

	writeJSON(w, http.StatusOK, callableResponse{Result: submitResponse{Success: true, SignedAt: res.SignedAt}})
}

// PublicEnvelope handles GET /v1/public/envelopes/{companyId}/{requestId}?token=.
func (h *SigningHandler) PublicEnvelope(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetPublicEnvelope(r.Context(), signing.PublicEnvelopeInput{
		CompanyID:   r.PathValue("companyId"),
		RequestID:   r.PathValue("requestId"),
		AccessToken: r.URL.Query().Get("token"),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err, false)
		return
	}

	writeJSON(w, http.StatusOK, toPublicEnvelopeDTO(view))
}

// Verify handles GET /v1/public/verify/{companyId}/{requestId}, the target
// of the certificate page QR code.
func (h *SigningHandler) Verify(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.VerifySeal(r.Context(), domain.EnvelopeKey{
		CompanyID: r.PathValue("companyId"),
		RequestID: r.PathValue("requestId"),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err, false)
		return
	}

	writeJSON(w, http.StatusOK, toVerificationDTO(v))
}

// decodeCallable reads {"data": {...}} into T. Malformed bodies become
// validation errors so they map to invalid-argument.
func decodeCallable[T any](r *http.Request) (*T, error) {
	var req callableRequest[T]
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, err
		}
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("data", "required")
		}
		return nil, domain.NewValidationError("data", fmt.Sprintf("malformed request: %s", jsonProblem(err)))
	}
	if req.Data == nil {
		return nil, domain.NewValidationError("data", "required")
	}
	return req.Data, nil
}

// jsonProblem describes a decode error without echoing request content.
func jsonProblem(err error) string {
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntax):
		return fmt.Sprintf("invalid JSON at offset %d", syntax.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type)
	default:
		return "invalid JSON"
	}
}
