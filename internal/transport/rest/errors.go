package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/service/signing"
	"github.com/heartmarshall/signroom-backend/pkg/ctxutil"
)

// Callable error codes.
const (
	CodeInvalidArgument    = "invalid-argument"
	CodeNotFound           = "not-found"
	CodePermissionDenied   = "permission-denied"
	CodeFailedPrecondition = "failed-precondition"
	CodeAlreadyExists      = "already-exists"
	CodeUnauthenticated    = "unauthenticated"
	CodeUnavailable        = "unavailable"
	CodeInternal           = "internal"
)

// errorBody is the callable failure envelope.
type errorBody struct {
	Error callableError `json:"error"`
}

type callableError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type fieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationDetails struct {
	Fields []fieldErrorDTO `json:"fields"`
	// MissingFieldIDs lists layout fields that were required but empty.
	MissingFieldIDs []string `json:"missingFieldIds,omitempty"`
}

// classify maps a service error onto a callable code, an HTTP status and a
// message safe to show outside the trust boundary.
func classify(err error) (code string, status int, message string) {
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		return CodeInvalidArgument, http.StatusRequestEntityTooLarge, "request too large"
	case errors.Is(err, domain.ErrValidation):
		return CodeInvalidArgument, http.StatusBadRequest, "invalid argument"
	case errors.Is(err, domain.ErrUnauthorized):
		return CodeUnauthenticated, http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return CodePermissionDenied, http.StatusForbidden, "access denied"
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound, http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrGone):
		return CodeFailedPrecondition, http.StatusPreconditionFailed, "envelope already signed"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		return CodeAlreadyExists, http.StatusConflict, "already submitted"
	case errors.Is(err, signing.ErrSealFailed):
		return CodeUnavailable, http.StatusServiceUnavailable, "could not seal the document, please retry"
	default:
		return CodeInternal, http.StatusInternalServerError, "internal error"
	}
}

// writeServiceError renders err as a callable error. Internal errors are
// logged with the request id and never described to the caller. detailed
// exposes the wrapped message of client errors to trusted operators.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, detailed bool) {
	code, status, message := classify(err)
	if detailed && status < http.StatusInternalServerError {
		message = err.Error()
	}

	body := callableError{Code: code, Message: message}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		details := validationDetails{MissingFieldIDs: domain.MissingFieldIDs(err)}
		for _, fe := range ve.Errors {
			details.Fields = append(details.Fields, fieldErrorDTO{Field: fe.Field, Message: fe.Message})
		}
		body.Message = ve.Error()
		body.Details = details
	}

	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, status, errorBody{Error: body})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: callableError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
