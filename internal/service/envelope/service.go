package envelope

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/pkg/ctxutil"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type envelopeRepo interface {
	Create(ctx context.Context, e *domain.Envelope) (*domain.Envelope, error)
	GetByKey(ctx context.Context, key domain.EnvelopeKey) (*domain.Envelope, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.Envelope, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	TransitionStatus(ctx context.Context, key domain.EnvelopeKey, from []domain.EnvelopeStatus, to domain.EnvelopeStatus) (*domain.Envelope, error)
	UpdateAccessToken(ctx context.Context, key domain.EnvelopeKey, hash string, at time.Time) (*domain.Envelope, error)
}

type auditRepo interface {
	LogEvent(ctx context.Context, ev domain.EnvelopeEvent) error
	ListEvents(ctx context.Context, key domain.EnvelopeKey) ([]domain.EnvelopeEvent, error)
	GetSigningRecord(ctx context.Context, key domain.EnvelopeKey) (domain.SigningAudit, error)
}

type blobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config holds the orchestrator settings taken from the signing section.
type Config struct {
	AccessTokenBytes int
	// LinkBaseURL is the origin of the recipient-facing signing page.
	LinkBaseURL string
}

// Service manages envelopes on behalf of an authenticated company operator.
type Service struct {
	envelopes envelopeRepo
	audit     auditRepo
	blobs     blobStore
	tx        txManager
	cfg       Config
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new Envelope service.
func NewService(
	log *slog.Logger,
	envelopes envelopeRepo,
	audit auditRepo,
	blobs blobStore,
	tx txManager,
	cfg Config,
) *Service {
	return &Service{
		envelopes: envelopes,
		audit:     audit,
		blobs:     blobs,
		tx:        tx,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "envelope"),
	}
}

// operator returns the calling operator and the company they act for.
func operator(ctx context.Context) (operatorID, companyID string, err error) {
	companyID, ok := ctxutil.CompanyIDFromCtx(ctx)
	if !ok {
		return "", "", domain.ErrUnauthorized
	}
	operatorID, _ = ctxutil.OperatorIDFromCtx(ctx)
	return operatorID, companyID, nil
}

// keyFor scopes requestID to the caller's company.
func keyFor(ctx context.Context, requestID string) (domain.EnvelopeKey, string, error) {
	operatorID, companyID, err := operator(ctx)
	if err != nil {
		return domain.EnvelopeKey{}, "", err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return domain.EnvelopeKey{}, "", domain.NewValidationError("requestId", "required")
	}
	if len(requestID) > maxRequestIDLength {
		return domain.EnvelopeKey{}, "", domain.NewValidationError("requestId", "too long")
	}
	return domain.EnvelopeKey{CompanyID: companyID, RequestID: requestID}, operatorID, nil
}

// SigningURL builds the recipient link for an envelope.
func SigningURL(baseURL string, key domain.EnvelopeKey, token string) string {
	return strings.TrimRight(baseURL, "/") +
		"/sign/" + url.PathEscape(key.CompanyID) + "/" + url.PathEscape(key.RequestID) +
		"?token=" + url.QueryEscape(token)
}

func (s *Service) logEvent(ctx context.Context, key domain.EnvelopeKey, ev domain.EnvelopeEventType, actor string, details map[string]any) error {
	return s.audit.LogEvent(ctx, domain.EnvelopeEvent{
		CompanyID: key.CompanyID,
		RequestID: key.RequestID,
		Event:     ev,
		Actor:     actorFor(actor),
		Details:   details,
	})
}

func actorFor(operatorID string) string {
	if operatorID == "" {
		return "operator"
	}
	return "operator:" + operatorID
}
