// Package signing implements the public side of the signing workflow: the
// read path behind a signing link and the single atomic submission that
// seals an envelope.
package signing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/seal"
)

// actorRecipient is the event actor for anything done through a signing link.
const actorRecipient = "recipient"

type envelopeRepo interface {
	GetByKey(ctx context.Context, key domain.EnvelopeKey) (*domain.Envelope, error)
	ClaimSeal(ctx context.Context, key domain.EnvelopeKey, tokenHash string, claim uuid.UUID, now, leaseCutoff time.Time) (*domain.Envelope, error)
	ReleaseSeal(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID) error
	CompleteSeal(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID, values domain.FieldValues, signedURL, storagePath string, signedAt time.Time) (*domain.Envelope, error)
}

type auditRepo interface {
	CreateSigningRecord(ctx context.Context, rec domain.SigningAudit) (domain.SigningAudit, error)
	GetSigningRecord(ctx context.Context, key domain.EnvelopeKey) (domain.SigningAudit, error)
	LogEvent(ctx context.Context, ev domain.EnvelopeEvent) error
}

type blobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type templateFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type sealer interface {
	Seal(ctx context.Context, in seal.Input) (seal.Output, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config holds the signing settings the service needs.
type Config struct {
	// SealLease is how long a pending_seal claim blocks other submissions.
	SealLease time.Duration
	// MaxSignatureBytes caps a decoded signature image.
	MaxSignatureBytes int
	// VerifyBaseURL is the public API origin used in certificate QR codes.
	// Empty leaves the QR code out.
	VerifyBaseURL string
}

// Service serves signing links.
type Service struct {
	envelopes envelopeRepo
	audit     auditRepo
	blobs     blobStore
	templates templateFetcher
	sealer    sealer
	tx        txManager
	cfg       Config
	now       func() time.Time
	log       *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used to stamp receipt time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new signing service.
func NewService(
	log *slog.Logger,
	envelopes envelopeRepo,
	audit auditRepo,
	blobs blobStore,
	templates templateFetcher,
	sealer sealer,
	tx txManager,
	cfg Config,
	opts ...Option,
) *Service {
	s := &Service{
		envelopes: envelopes,
		audit:     audit,
		blobs:     blobs,
		templates: templates,
		sealer:    sealer,
		tx:        tx,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "signing"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// authorize loads the envelope and checks the link token. A missing
// envelope still pays for one hash comparison so both failures cost the
// same. Drafts have not been dispatched and look like missing envelopes.
func (s *Service) authorize(ctx context.Context, key domain.EnvelopeKey, token string) (*domain.Envelope, error) {
	env, err := s.envelopes.GetByKey(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		auth.TokenMatches(token, "")
		return nil, fmt.Errorf("envelope: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load envelope: %w", err)
	}

	if !auth.TokenMatches(token, env.AccessTokenHash) {
		s.log.WarnContext(ctx, "signing link token mismatch",
			slog.String("company_id", key.CompanyID),
			slog.String("request_id", key.RequestID),
		)
		return nil, fmt.Errorf("envelope: %w", domain.ErrForbidden)
	}

	if env.Status == domain.EnvelopeStatusDraft {
		return nil, fmt.Errorf("envelope: %w", domain.ErrNotFound)
	}
	return env, nil
}

// logEvent appends to the envelope history. Failures are logged, never
// returned: history must not block the signing path.
func (s *Service) logEvent(ctx context.Context, key domain.EnvelopeKey, event domain.EnvelopeEventType, details map[string]any) {
	err := s.audit.LogEvent(ctx, domain.EnvelopeEvent{
		CompanyID: key.CompanyID,
		RequestID: key.RequestID,
		Event:     event,
		Actor:     actorRecipient,
		Details:   details,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "log envelope event",
			slog.String("event", string(event)),
			slog.String("request_id", key.RequestID),
			slog.String("error", err.Error()),
		)
	}
}
