package signing

import (
	"context"
	"fmt"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// GetPublicEnvelope returns what the recipient needs to fill in the
// envelope: the template location and field layout, never values or other
// tenant data. Signed envelopes yield domain.ErrGone.
func (s *Service) GetPublicEnvelope(ctx context.Context, input PublicEnvelopeInput) (*domain.EnvelopeView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	env, err := s.authorize(ctx, input.key(), input.AccessToken)
	if err != nil {
		return nil, err
	}

	if env.IsSigned() {
		return nil, fmt.Errorf("envelope already signed: %w", domain.ErrGone)
	}

	view := env.PublicView()
	if env.TemplatePath != "" {
		url, err := s.blobs.URL(ctx, env.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("resolve template url: %w", err)
		}
		view.PDFURL = url
	}

	s.logEvent(ctx, env.Key(), domain.EnvelopeEventViewed, nil)

	return &view, nil
}
