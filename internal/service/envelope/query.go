package envelope

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// ListEnvelopes returns the caller's envelopes newest first, plus the total.
func (s *Service) ListEnvelopes(ctx context.Context, input ListInput) ([]domain.Envelope, int, error) {
	_, companyID, err := operator(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	items, err := s.envelopes.ListByCompany(ctx, companyID, limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list envelopes: %w", err)
	}
	total, err := s.envelopes.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("count envelopes: %w", err)
	}
	return items, total, nil
}

// GetEnvelope returns one of the caller's envelopes.
func (s *Service) GetEnvelope(ctx context.Context, requestID string) (*domain.Envelope, error) {
	key, _, err := keyFor(ctx, requestID)
	if err != nil {
		return nil, err
	}

	env, err := s.envelopes.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get envelope: %w", err)
	}
	return env, nil
}

// GetHistory returns the envelope with its event log and, once signed, the
// signing audit record. All three come from one snapshot.
func (s *Service) GetHistory(ctx context.Context, requestID string) (*History, error) {
	var h *History
	err := s.tx.RunReadOnly(ctx, func(txCtx context.Context) error {
		env, err := s.GetEnvelope(txCtx, requestID)
		if err != nil {
			return err
		}
		key := env.Key()

		events, err := s.audit.ListEvents(txCtx, key)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}

		h = &History{Envelope: env, Events: events}
		if !env.IsSigned() {
			return nil
		}
		rec, err := s.audit.GetSigningRecord(txCtx, key)
		switch {
		case err == nil:
			h.Signing = &rec
		case errors.Is(err, domain.ErrNotFound):
		default:
			return fmt.Errorf("get signing record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// ResolveDownloadURL returns a URL for the sealed artifact. Envelopes that
// are not signed yet have none and yield domain.ErrNotFound.
func (s *Service) ResolveDownloadURL(ctx context.Context, requestID string) (string, error) {
	env, err := s.GetEnvelope(ctx, requestID)
	if err != nil {
		return "", err
	}
	if !env.IsSigned() {
		return "", fmt.Errorf("envelope %s is %s: %w", env.RequestID, env.Status, domain.ErrNotFound)
	}

	// Presigned URLs expire, so resolve from the storage path on every call.
	if env.StoragePath != "" {
		u, err := s.blobs.URL(ctx, env.StoragePath)
		if err != nil {
			return "", fmt.Errorf("resolve signed pdf url: %w", err)
		}
		return u, nil
	}
	if env.SignedPDFURL == "" {
		return "", fmt.Errorf("signed envelope has no artifact: %w", domain.ErrNotFound)
	}
	return env.SignedPDFURL, nil
}
