package signing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// Verification is what the certificate QR code resolves to: enough to
// check a sealed file's digest, nothing about its contents.
type Verification struct {
	RequestID      string
	Status         domain.EnvelopeStatus
	SignedAt       *time.Time
	SealedSHA256   string
	TemplateSHA256 string
}

// VerifySeal reports the seal of a signed envelope. The endpoint is
// unauthenticated, so every envelope without a seal reads as
// domain.ErrNotFound whatever its status.
func (s *Service) VerifySeal(ctx context.Context, key domain.EnvelopeKey) (*Verification, error) {
	env, err := s.envelopes.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load envelope: %w", err)
	}

	if !env.IsSigned() {
		return nil, fmt.Errorf("envelope: %w", domain.ErrNotFound)
	}

	v := &Verification{RequestID: env.RequestID, Status: env.Status}

	rec, err := s.audit.GetSigningRecord(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load signing record: %w", err)
	}
	v.SignedAt = env.SignedAt
	v.SealedSHA256 = rec.SealedSHA256
	v.TemplateSHA256 = rec.TemplateSHA256
	return v, nil
}

func (s *Service) verifyURL(key domain.EnvelopeKey) string {
	if s.cfg.VerifyBaseURL == "" {
		return ""
	}
	return VerifyURL(s.cfg.VerifyBaseURL, key)
}

// VerifyURL is the public verification address of an envelope's seal.
func VerifyURL(baseURL string, key domain.EnvelopeKey) string {
	return strings.TrimRight(baseURL, "/") + "/v1/public/verify/" +
		url.PathEscape(key.CompanyID) + "/" + url.PathEscape(key.RequestID)
}
