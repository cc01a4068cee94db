package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/service/envelope"
)

type envelopeService interface {
	CreateEnvelope(ctx context.Context, input envelope.CreateEnvelopeInput) (*envelope.CreatedEnvelope, error)
	Dispatch(ctx context.Context, requestID string) (*domain.Envelope, error)
	RotateAccessToken(ctx context.Context, requestID string) (*envelope.CreatedEnvelope, error)
	ListEnvelopes(ctx context.Context, input envelope.ListInput) ([]domain.Envelope, int, error)
	GetEnvelope(ctx context.Context, requestID string) (*domain.Envelope, error)
	GetHistory(ctx context.Context, requestID string) (*envelope.History, error)
	ResolveDownloadURL(ctx context.Context, requestID string) (string, error)
	UploadTemplate(ctx context.Context, data []byte) (*envelope.UploadedTemplate, error)
}

// EnvelopeHandler serves the authenticated company API.
type EnvelopeHandler struct {
	svc envelopeService
	log *slog.Logger
}

// NewEnvelopeHandler creates an EnvelopeHandler.
func NewEnvelopeHandler(svc envelopeService, logger *slog.Logger) *EnvelopeHandler {
	return &EnvelopeHandler{svc: svc, log: logger.With("handler", "envelope")}
}

type createEnvelopeRequest struct {
	Title          string     `json:"title"`
	RecipientName  string     `json:"recipientName"`
	RecipientEmail string     `json:"recipientEmail"`
	TemplatePDFURL string     `json:"templatePdfUrl"`
	Fields         []fieldDTO `json:"fields"`
	Draft          bool       `json:"draft"`
}

type listResponse struct {
	Items      []envelopeDTO `json:"items"`
	TotalCount int           `json:"totalCount"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

type uploadedTemplateResponse struct {
	TemplatePDFURL string `json:"templatePdfUrl"`
	SHA256         string `json:"sha256"`
	Size           int    `json:"size"`
}

// Create handles POST /v1/envelopes.
func (h *EnvelopeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEnvelopeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid request body: "+jsonProblem(err))
		return
	}

	created, err := h.svc.CreateEnvelope(r.Context(), envelope.CreateEnvelopeInput{
		Title:          req.Title,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		TemplateURL:    req.TemplatePDFURL,
		Fields:         fromFieldDTOs(req.Fields),
		Draft:          req.Draft,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}

	writeJSON(w, http.StatusCreated, toCreatedEnvelopeDTO(created))
}

// List handles GET /v1/envelopes?limit=&offset=.
func (h *EnvelopeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	items, total, err := h.svc.ListEnvelopes(r.Context(), envelope.ListInput{Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}

	resp := listResponse{Items: make([]envelopeDTO, len(items)), TotalCount: total}
	for i := range items {
		resp.Items[i] = toEnvelopeDTO(&items[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/envelopes/{requestId}.
func (h *EnvelopeHandler) Get(w http.ResponseWriter, r *http.Request) {
	env, err := h.svc.GetEnvelope(r.Context(), r.PathValue("requestId"))
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}
	writeJSON(w, http.StatusOK, toEnvelopeDTO(env))
}

// Dispatch handles POST /v1/envelopes/{requestId}/dispatch.
func (h *EnvelopeHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	env, err := h.svc.Dispatch(r.Context(), r.PathValue("requestId"))
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}
	writeJSON(w, http.StatusOK, toEnvelopeDTO(env))
}

// RotateToken handles POST /v1/envelopes/{requestId}/rotate-token.
func (h *EnvelopeHandler) RotateToken(w http.ResponseWriter, r *http.Request) {
	rotated, err := h.svc.RotateAccessToken(r.Context(), r.PathValue("requestId"))
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}
	writeJSON(w, http.StatusOK, toCreatedEnvelopeDTO(rotated))
}

// Download handles GET /v1/envelopes/{requestId}/download.
func (h *EnvelopeHandler) Download(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.ResolveDownloadURL(r.Context(), r.PathValue("requestId"))
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}
	writeJSON(w, http.StatusOK, downloadResponse{URL: u})
}

// History handles GET /v1/envelopes/{requestId}/history.
func (h *EnvelopeHandler) History(w http.ResponseWriter, r *http.Request) {
	hist, err := h.svc.GetHistory(r.Context(), r.PathValue("requestId"))
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}
	writeJSON(w, http.StatusOK, toHistoryDTO(hist))
}

// UploadTemplate handles POST /v1/envelopes/templates. The body is the raw
// PDF; the response carries the templatePdfUrl to create envelopes with.
func (h *EnvelopeHandler) UploadTemplate(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || (mt != "application/pdf" && mt != "application/octet-stream") {
			writeError(w, http.StatusUnsupportedMediaType, CodeInvalidArgument, "body must be application/pdf")
			return
		}
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}

	up, err := h.svc.UploadTemplate(r.Context(), data)
	if err != nil {
		writeServiceError(w, r, h.log, err, true)
		return
	}
	writeJSON(w, http.StatusCreated, uploadedTemplateResponse{
		TemplatePDFURL: up.Ref,
		SHA256:         up.SHA256,
		Size:           up.Size,
	})
}

// queryInt parses an optional integer query parameter, writing a 400 on
// malformed input.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, name+" must be an integer")
		return 0, false
	}
	return v, true
}
