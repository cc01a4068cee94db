package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueCompanyID returns a fresh company id so tests never share envelopes.
func UniqueCompanyID() string {
	return "company-" + uniqueSuffix()
}

// DefaultFields returns a small layout with one field of every kind.
// The signature is required; the others are optional.
func DefaultFields() []domain.FieldSpec {
	return []domain.FieldSpec{
		{ID: "sig", Kind: domain.FieldKindSignature, PageNumber: 1, XPosition: 10, YPosition: 70, Width: 30, Height: 8, Unit: domain.SizeUnitPercent, Required: true},
		{ID: "name", Kind: domain.FieldKindText, PageNumber: 1, XPosition: 10, YPosition: 60, Width: 40, Height: 4, Unit: domain.SizeUnitPercent, Label: "Full name"},
		{ID: "date", Kind: domain.FieldKindDate, PageNumber: 1, XPosition: 60, YPosition: 60, Width: 160, Height: 24, Unit: domain.SizeUnitPixels},
		{ID: "agree", Kind: domain.FieldKindCheckbox, PageNumber: 1, XPosition: 10, YPosition: 80, Width: 3, Height: 2, Unit: domain.SizeUnitPercent},
	}
}

// SeedEnvelope inserts a sent envelope for companyID with DefaultFields and
// the given access token hash. Returns the envelope as inserted.
func SeedEnvelope(t *testing.T, pool *pgxpool.Pool, companyID, tokenHash string) domain.Envelope {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	env := domain.Envelope{
		CompanyID:       companyID,
		RequestID:       "req-" + suffix,
		Title:           "Agreement " + suffix,
		RecipientName:   "Recipient " + suffix,
		RecipientEmail:  "recipient-" + suffix + "@example.com",
		PDFURL:          "https://files.example.com/" + suffix + ".pdf",
		Status:          domain.EnvelopeStatusSent,
		Fields:          DefaultFields(),
		AccessTokenHash: tokenHash,
		CreatedBy:       "op-" + suffix,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	fieldsJSON, err := json.Marshal(fieldsDoc(env.Fields))
	if err != nil {
		t.Fatalf("testhelper: SeedEnvelope marshal fields: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO envelopes (company_id, request_id, title, recipient_name, recipient_email, pdf_url,
		                        status, fields, access_token_hash, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		env.CompanyID, env.RequestID, env.Title, env.RecipientName, env.RecipientEmail, env.PDFURL,
		string(env.Status), fieldsJSON, env.AccessTokenHash, env.CreatedBy, env.CreatedAt, env.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEnvelope insert: %v", err)
	}

	return env
}

// SetEnvelopeStatus forces an envelope into status, bypassing the guards.
// Only draft and sent are valid targets without extra columns.
func SetEnvelopeStatus(t *testing.T, pool *pgxpool.Pool, key domain.EnvelopeKey, status domain.EnvelopeStatus) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE envelopes SET status = $3 WHERE company_id = $1 AND request_id = $2`,
		key.CompanyID, key.RequestID, string(status),
	)
	if err != nil {
		t.Fatalf("testhelper: SetEnvelopeStatus: %v", err)
	}
}

// fieldsDoc mirrors the jsonb layout written by the envelope repository.
func fieldsDoc(fields []domain.FieldSpec) []map[string]any {
	out := make([]map[string]any, len(fields))
	for i, f := range fields {
		out[i] = map[string]any{
			"id":         f.ID,
			"type":       string(f.Kind),
			"pageNumber": f.PageNumber,
			"xPosition":  f.XPosition,
			"yPosition":  f.YPosition,
			"width":      f.Width,
			"height":     f.Height,
			"unit":       string(f.Unit),
			"required":   f.Required,
			"label":      f.Label,
		}
	}
	return out
}
