package envelope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// Dispatch moves a draft envelope to sent so its link starts working.
func (s *Service) Dispatch(ctx context.Context, requestID string) (*domain.Envelope, error) {
	key, operatorID, err := keyFor(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var env *domain.Envelope
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		env, err = s.envelopes.TransitionStatus(txCtx, key,
			[]domain.EnvelopeStatus{domain.EnvelopeStatusDraft}, domain.EnvelopeStatusSent)
		if err != nil {
			return err
		}
		return s.logEvent(txCtx, key, domain.EnvelopeEventDispatched, operatorID, nil)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("only draft envelopes can be dispatched: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("dispatch envelope: %w", err)
	}

	s.log.InfoContext(ctx, "envelope dispatched",
		slog.String("company_id", key.CompanyID),
		slog.String("request_id", key.RequestID),
	)
	return env, nil
}

// RotateAccessToken replaces the envelope's link token. The previous link
// stops working immediately. Signed envelopes cannot be re-sent.
func (s *Service) RotateAccessToken(ctx context.Context, requestID string) (*CreatedEnvelope, error) {
	key, operatorID, err := keyFor(ctx, requestID)
	if err != nil {
		return nil, err
	}

	token, hash, err := auth.GenerateLinkToken(s.cfg.AccessTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	var env *domain.Envelope
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		env, err = s.envelopes.UpdateAccessToken(txCtx, key, hash, s.now())
		if err != nil {
			return err
		}
		return s.logEvent(txCtx, key, domain.EnvelopeEventTokenRotated, operatorID, nil)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("envelope is signed or being signed: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("rotate access token: %w", err)
	}

	s.log.InfoContext(ctx, "access token rotated",
		slog.String("company_id", key.CompanyID),
		slog.String("request_id", key.RequestID),
	)

	return &CreatedEnvelope{
		Envelope:    env,
		AccessToken: token,
		SigningURL:  SigningURL(s.cfg.LinkBaseURL, key, token),
	}, nil
}
