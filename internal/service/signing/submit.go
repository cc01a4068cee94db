package signing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob"
	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/seal"
	"github.com/heartmarshall/signroom-backend/pkg/ctxutil"
)

const pdfContentType = "application/pdf"

// ErrSealFailed reports that sealing or storing the artifact failed after
// the values were accepted. The submission may be retried.
var ErrSealFailed = errors.New("seal failed")

// SubmitResult describes an accepted submission.
type SubmitResult struct {
	SignedAt time.Time
	Pages    int
}

// SubmitPublicEnvelope validates the recipient's values, seals them onto
// the template and marks the envelope signed. Exactly one submission per
// envelope succeeds; concurrent or repeated ones get domain.ErrConflict.
// A failure after validation leaves the envelope in sent, so the whole
// submission can be retried.
func (s *Service) SubmitPublicEnvelope(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	key := input.key()
	env, err := s.authorize(ctx, key, input.AccessToken)
	if err != nil {
		return nil, err
	}

	if env.IsSigned() {
		return nil, fmt.Errorf("envelope already signed: %w", domain.ErrConflict)
	}

	receivedAt := s.now()
	if env.SealClaimLive(receivedAt, s.cfg.SealLease) {
		return nil, fmt.Errorf("envelope is being sealed: %w", domain.ErrConflict)
	}

	values, errs := parseValues(env.Fields, input.FieldValues, s.cfg.MaxSignatureBytes)
	errs = appendMissing(errs, values.MissingRequired(env.Fields))
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	rec := domain.SigningAudit{
		ID:              uuid.New(),
		CompanyID:       key.CompanyID,
		RequestID:       key.RequestID,
		IP:              firstNonEmpty(ctxutil.ClientIPFromCtx(ctx), input.AuditData.IP),
		ClientIP:        input.AuditData.IP,
		UserAgent:       firstNonEmpty(ctxutil.UserAgentFromCtx(ctx), input.AuditData.UserAgent),
		ClientTimestamp: input.AuditData.Timestamp,
		ReceivedAt:      receivedAt,
	}

	claim := uuid.New()
	// The claim is bound to the token checked above: a rotation in between
	// makes it fail like a concurrent submission.
	claimed, err := s.envelopes.ClaimSeal(ctx, key, env.AccessTokenHash, claim, receivedAt, receivedAt.Add(-s.cfg.SealLease))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("envelope already submitted: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("claim seal: %w", err)
	}
	s.logEvent(ctx, key, domain.EnvelopeEventSealStarted, nil)

	out, err := s.sealAndStore(ctx, claimed, claim, values, &rec)
	if err != nil {
		s.releaseClaim(ctx, key, claim, err)
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("envelope already submitted: %w", domain.ErrConflict)
		}
		// The cause stays in the logs; callers only learn that sealing failed.
		return nil, ErrSealFailed
	}

	s.log.InfoContext(ctx, "envelope signed",
		slog.String("company_id", key.CompanyID),
		slog.String("request_id", key.RequestID),
		slog.Int("pages", out.Pages),
		slog.String("sealed_sha256", out.SealedSHA256),
	)

	return &SubmitResult{SignedAt: receivedAt, Pages: out.Pages}, nil
}

// sealAndStore renders the sealed PDF, uploads it and commits the signed
// state, the audit record and the history entry in one transaction.
func (s *Service) sealAndStore(ctx context.Context, env *domain.Envelope, claim uuid.UUID, values domain.FieldValues, rec *domain.SigningAudit) (seal.Output, error) {
	key := env.Key()

	template, err := s.loadTemplate(ctx, env)
	if err != nil {
		return seal.Output{}, err
	}

	out, err := s.sealer.Seal(ctx, seal.Input{
		Envelope:   env,
		Values:     values,
		Template:   template,
		ReceivedAt: rec.ReceivedAt,
		IP:         rec.IP,
		UserAgent:  rec.UserAgent,
		VerifyURL:  s.verifyURL(key),
	})
	if err != nil {
		return seal.Output{}, fmt.Errorf("seal envelope: %w", err)
	}
	rec.TemplateSHA256 = out.TemplateSHA256
	rec.SealedSHA256 = out.SealedSHA256

	path := blob.SignedArtifactKey(key.CompanyID, key.RequestID, rec.ReceivedAt)
	if err := s.blobs.Put(ctx, path, out.PDF, pdfContentType); err != nil {
		return seal.Output{}, fmt.Errorf("store sealed pdf: %w", err)
	}
	signedURL, err := s.blobs.URL(ctx, path)
	if err != nil {
		s.discardArtifact(ctx, key, path)
		return seal.Output{}, fmt.Errorf("resolve sealed pdf url: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.envelopes.CompleteSeal(txCtx, key, claim, values, signedURL, path, rec.ReceivedAt); err != nil {
			return fmt.Errorf("complete seal: %w", err)
		}
		if _, err := s.audit.CreateSigningRecord(txCtx, *rec); err != nil {
			return fmt.Errorf("create signing record: %w", err)
		}
		return s.audit.LogEvent(txCtx, domain.EnvelopeEvent{
			CompanyID: key.CompanyID,
			RequestID: key.RequestID,
			Event:     domain.EnvelopeEventSigned,
			Actor:     actorRecipient,
			Details:   map[string]any{"storage_path": path, "sealed_sha256": out.SealedSHA256},
		})
	})
	if err != nil {
		s.discardArtifact(ctx, key, path)
		return seal.Output{}, err
	}

	return out, nil
}

// discardArtifact removes a sealed PDF that never got committed. Every
// attempt writes under its own key, so nothing else can reference it.
func (s *Service) discardArtifact(ctx context.Context, key domain.EnvelopeKey, path string) {
	if err := s.blobs.Delete(context.WithoutCancel(ctx), path); err != nil {
		s.log.WarnContext(ctx, "discard sealed pdf",
			slog.String("request_id", key.RequestID),
			slog.String("storage_path", path),
			slog.String("error", err.Error()),
		)
	}
}

// loadTemplate reads the template from the blob store when the envelope
// owns a copy, otherwise downloads it from its URL. Either way the bytes
// must pass seal.CheckTemplate before they reach the sealer.
func (s *Service) loadTemplate(ctx context.Context, env *domain.Envelope) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if env.TemplatePath != "" {
		data, err = s.blobs.Get(ctx, env.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("load template: %w", err)
		}
	} else {
		data, err = s.templates.Fetch(ctx, env.PDFURL)
		if err != nil {
			return nil, fmt.Errorf("fetch template: %w", err)
		}
	}

	if err := seal.CheckTemplate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// releaseClaim hands the envelope back to sent after a failed seal. It runs
// detached from ctx so a disconnected client still frees the slot.
func (s *Service) releaseClaim(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID, cause error) {
	ctx = context.WithoutCancel(ctx)

	s.log.ErrorContext(ctx, "seal failed",
		slog.String("company_id", key.CompanyID),
		slog.String("request_id", key.RequestID),
		slog.String("error", cause.Error()),
	)
	s.logEvent(ctx, key, domain.EnvelopeEventSealFailed, map[string]any{"error": cause.Error()})

	if err := s.envelopes.ReleaseSeal(ctx, key, claim); err != nil {
		// ErrConflict here means the claim was already taken over or the
		// envelope got signed by the holder of a newer claim.
		s.log.WarnContext(ctx, "release seal claim",
			slog.String("request_id", key.RequestID),
			slog.String("error", err.Error()),
		)
	}
}

// appendMissing adds a "required" entry for every missing id that has no
// error yet.
func appendMissing(errs []domain.FieldError, missing []string) []domain.FieldError {
	reported := make(map[string]bool, len(errs))
	for _, fe := range errs {
		reported[fe.Field] = true
	}
	for _, id := range missing {
		if !reported[id] {
			errs = append(errs, domain.FieldError{Field: id, Message: "required"})
		}
	}
	return errs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
