package envelope

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob"
	"github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// CreateEnvelope stores a new envelope for the caller's company and issues
// its signing link. The envelope starts in sent unless input.Draft is set.
func (s *Service) CreateEnvelope(ctx context.Context, input CreateEnvelopeInput) (*CreatedEnvelope, error) {
	operatorID, companyID, err := operator(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	templateURL := strings.TrimSpace(input.TemplateURL)
	var templatePath string
	if key, ok := blob.ParseTemplateRef(templateURL); ok {
		// Only templates this company uploaded can back an envelope.
		if !strings.HasPrefix(key, blob.TemplatePrefix(companyID)) {
			return nil, domain.NewValidationError("templatePdfUrl", "not a template uploaded by this company")
		}
		templatePath = key
		templateURL = blob.TemplateRefPrefix + key
	}

	token, hash, err := auth.GenerateLinkToken(s.cfg.AccessTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	fields := make([]domain.FieldSpec, len(input.Fields))
	for i, f := range input.Fields {
		fields[i] = f.Normalized()
	}

	status := domain.EnvelopeStatusSent
	if input.Draft {
		status = domain.EnvelopeStatusDraft
	}

	var created *domain.Envelope
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.envelopes.Create(txCtx, &domain.Envelope{
			CompanyID:       companyID,
			RequestID:       uuid.NewString(),
			Title:           strings.TrimSpace(input.Title),
			RecipientName:   strings.TrimSpace(input.RecipientName),
			RecipientEmail:  strings.TrimSpace(input.RecipientEmail),
			PDFURL:          templateURL,
			TemplatePath:    templatePath,
			Status:          status,
			Fields:          fields,
			AccessTokenHash: hash,
			CreatedBy:       operatorID,
		})
		if err != nil {
			return fmt.Errorf("create envelope: %w", err)
		}

		key := created.Key()
		if err := s.logEvent(txCtx, key, domain.EnvelopeEventCreated, operatorID, map[string]any{"fields": len(fields)}); err != nil {
			return fmt.Errorf("log created event: %w", err)
		}
		if status == domain.EnvelopeStatusSent {
			if err := s.logEvent(txCtx, key, domain.EnvelopeEventDispatched, operatorID, nil); err != nil {
				return fmt.Errorf("log dispatched event: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "envelope created",
		slog.String("company_id", companyID),
		slog.String("request_id", created.RequestID),
		slog.String("status", string(created.Status)),
		slog.Int("fields", len(fields)),
	)

	return &CreatedEnvelope{
		Envelope:    created,
		AccessToken: token,
		SigningURL:  SigningURL(s.cfg.LinkBaseURL, created.Key(), token),
	}, nil
}
