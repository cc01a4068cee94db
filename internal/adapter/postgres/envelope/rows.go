package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// fieldRow is the jsonb shape of one entry in envelopes.fields.
type fieldRow struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	PageNumber int     `json:"pageNumber"`
	XPosition  float64 `json:"xPosition"`
	YPosition  float64 `json:"yPosition"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Unit       string  `json:"unit,omitempty"`
	Required   bool    `json:"required"`
	Label      string  `json:"label,omitempty"`
}

// valueRow is the jsonb shape of one entry in envelopes.field_values.
type valueRow struct {
	Kind        string `json:"kind"`
	Text        string `json:"text,omitempty"`
	Checked     bool   `json:"checked,omitempty"`
	Image       []byte `json:"image,omitempty"`
	ImageFormat string `json:"imageFormat,omitempty"`
}

func marshalFields(fields []domain.FieldSpec) ([]byte, error) {
	rows := make([]fieldRow, len(fields))
	for i, f := range fields {
		rows[i] = fieldRow{
			ID:         f.ID,
			Type:       string(f.Kind),
			PageNumber: f.PageNumber,
			XPosition:  f.XPosition,
			YPosition:  f.YPosition,
			Width:      f.Width,
			Height:     f.Height,
			Unit:       string(f.Unit),
			Required:   f.Required,
			Label:      f.Label,
		}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	return data, nil
}

func unmarshalFields(data []byte) ([]domain.FieldSpec, error) {
	var rows []fieldRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	fields := make([]domain.FieldSpec, len(rows))
	for i, r := range rows {
		fields[i] = domain.FieldSpec{
			ID:         r.ID,
			Kind:       domain.FieldKind(r.Type),
			PageNumber: r.PageNumber,
			XPosition:  r.XPosition,
			YPosition:  r.YPosition,
			Width:      r.Width,
			Height:     r.Height,
			Unit:       domain.SizeUnit(r.Unit),
			Required:   r.Required,
			Label:      r.Label,
		}
	}
	return fields, nil
}

func marshalValues(values domain.FieldValues) ([]byte, error) {
	rows := make(map[string]valueRow, len(values))
	for id, v := range values {
		rows[id] = valueRow{
			Kind:        string(v.Kind),
			Text:        v.Text,
			Checked:     v.Checked,
			Image:       v.Image,
			ImageFormat: string(v.ImageFormat),
		}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal field values: %w", err)
	}
	return data, nil
}

func unmarshalValues(data []byte) (domain.FieldValues, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows map[string]valueRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal field values: %w", err)
	}
	values := make(domain.FieldValues, len(rows))
	for id, r := range rows {
		values[id] = domain.FieldValue{
			Kind:        domain.FieldKind(r.Kind),
			Text:        r.Text,
			Checked:     r.Checked,
			Image:       r.Image,
			ImageFormat: domain.ImageFormat(r.ImageFormat),
		}
	}
	return values, nil
}

// scanEnvelope scans a row selected with the columns list.
func scanEnvelope(row pgx.Row) (*domain.Envelope, error) {
	var (
		e            domain.Envelope
		status       string
		templatePath *string
		fieldsJSON   []byte
		valuesJSON   []byte
		rotatedAt    *time.Time
		claim        *uuid.UUID
		claimedAt    *time.Time
		signedURL    *string
		storagePath  *string
		signedAt     *time.Time
	)

	err := row.Scan(
		&e.CompanyID, &e.RequestID, &e.Title, &e.RecipientName, &e.RecipientEmail, &e.PDFURL, &templatePath,
		&status, &fieldsJSON, &valuesJSON, &e.AccessTokenHash, &rotatedAt, &claim, &claimedAt,
		&signedURL, &storagePath, &signedAt, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Status = domain.EnvelopeStatus(status)
	e.TemplatePath = deref(templatePath)
	e.TokenRotatedAt = rotatedAt
	e.SealClaim = claim
	e.SealClaimedAt = claimedAt
	e.SignedPDFURL = deref(signedURL)
	e.StoragePath = deref(storagePath)
	e.SignedAt = signedAt

	if e.Fields, err = unmarshalFields(fieldsJSON); err != nil {
		return nil, err
	}
	if e.Values, err = unmarshalValues(valuesJSON); err != nil {
		return nil, err
	}
	return &e, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
