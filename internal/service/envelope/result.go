package envelope

import "github.com/heartmarshall/signroom-backend/internal/domain"

// CreatedEnvelope is returned once, at creation or token rotation. The raw
// access token is never stored and cannot be read back later.
type CreatedEnvelope struct {
	Envelope    *domain.Envelope
	AccessToken string
	SigningURL  string
}

// History is the company-side timeline of one envelope.
type History struct {
	Envelope *domain.Envelope
	Events   []domain.EnvelopeEvent
	// Signing is nil until the envelope is signed.
	Signing *domain.SigningAudit
}
