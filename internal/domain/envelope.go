package domain

import (
	"time"

	"github.com/google/uuid"
)

// EnvelopeKey identifies an envelope. companyID scopes every lookup and storage path.
type EnvelopeKey struct {
	CompanyID string
	RequestID string
}

func (k EnvelopeKey) String() string { return k.CompanyID + "/" + k.RequestID }

// Envelope is one document dispatched for signature.
type Envelope struct {
	CompanyID      string
	RequestID      string
	Title          string
	RecipientName  string
	RecipientEmail string
	// PDFURL references the unsigned template and never changes.
	PDFURL string
	// TemplatePath is set when the template lives in the blob store.
	TemplatePath string
	Status       EnvelopeStatus
	Fields       []FieldSpec
	// Values is nil until the envelope is signed.
	Values FieldValues

	AccessTokenHash string
	TokenRotatedAt  *time.Time

	SealClaim     *uuid.UUID
	SealClaimedAt *time.Time

	SignedPDFURL string
	StoragePath  string
	SignedAt     *time.Time

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the composite key of the envelope.
func (e *Envelope) Key() EnvelopeKey {
	return EnvelopeKey{CompanyID: e.CompanyID, RequestID: e.RequestID}
}

// IsSigned reports whether the envelope has been sealed.
func (e *Envelope) IsSigned() bool {
	return e.Status == EnvelopeStatusSigned
}

// SealClaimLive reports whether a pending_seal claim exists and has not
// expired relative to now.
func (e *Envelope) SealClaimLive(now time.Time, lease time.Duration) bool {
	if e.Status != EnvelopeStatusPendingSeal || e.SealClaimedAt == nil {
		return false
	}
	return now.Sub(*e.SealClaimedAt) < lease
}

// PublicView returns the projection shown to an anonymous recipient.
// Field values, token material and storage pointers are never included.
func (e *Envelope) PublicView() EnvelopeView {
	fields := make([]FieldSpec, len(e.Fields))
	copy(fields, e.Fields)
	return EnvelopeView{
		Title:          e.Title,
		RecipientName:  e.RecipientName,
		RecipientEmail: e.RecipientEmail,
		PDFURL:         e.PDFURL,
		Fields:         fields,
		Status:         e.Status,
	}
}

// EnvelopeView is the read model returned by the public gateway.
type EnvelopeView struct {
	Title          string
	RecipientName  string
	RecipientEmail string
	PDFURL         string
	Fields         []FieldSpec
	Status         EnvelopeStatus
}

// EnvelopeEvent is one append-only entry in an envelope's history.
type EnvelopeEvent struct {
	ID        uuid.UUID
	CompanyID string
	RequestID string
	Event     EnvelopeEventType
	Actor     string
	Details   map[string]any
	CreatedAt time.Time
}
