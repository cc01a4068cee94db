package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/service/envelope"
	"github.com/heartmarshall/signroom-backend/internal/service/signing"
)

type fieldDTO struct {
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

func toFieldDTOs(fields []domain.FieldSpec) []fieldDTO {
	out := make([]fieldDTO, len(fields))
	for i, f := range fields {
		out[i] = fieldDTO{
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
	return out
}

func fromFieldDTOs(in []fieldDTO) []domain.FieldSpec {
	out := make([]domain.FieldSpec, len(in))
	for i, f := range in {
		out[i] = domain.FieldSpec{
			ID:         f.ID,
			Kind:       domain.FieldKind(f.Type),
			PageNumber: f.PageNumber,
			XPosition:  f.XPosition,
			YPosition:  f.YPosition,
			Width:      f.Width,
			Height:     f.Height,
			Unit:       domain.SizeUnit(f.Unit),
			Required:   f.Required,
			Label:      f.Label,
		}
	}
	return out
}

// publicEnvelopeDTO is what the anonymous recipient sees.
type publicEnvelopeDTO struct {
	Title          string     `json:"title"`
	RecipientName  string     `json:"recipientName"`
	RecipientEmail string     `json:"recipientEmail"`
	PDFURL         string     `json:"pdfUrl"`
	Fields         []fieldDTO `json:"fields"`
	Status         string     `json:"status"`
}

func toPublicEnvelopeDTO(v *domain.EnvelopeView) publicEnvelopeDTO {
	return publicEnvelopeDTO{
		Title:          v.Title,
		RecipientName:  v.RecipientName,
		RecipientEmail: v.RecipientEmail,
		PDFURL:         v.PDFURL,
		Fields:         toFieldDTOs(v.Fields),
		Status:         string(v.Status),
	}
}

// envelopeDTO is the company-side representation. Field values are not
// included; the sealed PDF is the record of what was signed.
type envelopeDTO struct {
	CompanyID      string     `json:"companyId"`
	RequestID      string     `json:"requestId"`
	Title          string     `json:"title"`
	RecipientName  string     `json:"recipientName"`
	RecipientEmail string     `json:"recipientEmail"`
	PDFURL         string     `json:"pdfUrl"`
	Status         string     `json:"status"`
	Fields         []fieldDTO `json:"fields"`
	SignedAt       *time.Time `json:"signedAt,omitempty"`
	TokenRotatedAt *time.Time `json:"tokenRotatedAt,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toEnvelopeDTO(e *domain.Envelope) envelopeDTO {
	return envelopeDTO{
		CompanyID:      e.CompanyID,
		RequestID:      e.RequestID,
		Title:          e.Title,
		RecipientName:  e.RecipientName,
		RecipientEmail: e.RecipientEmail,
		PDFURL:         e.PDFURL,
		Status:         string(e.Status),
		Fields:         toFieldDTOs(e.Fields),
		SignedAt:       e.SignedAt,
		TokenRotatedAt: e.TokenRotatedAt,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

type createdEnvelopeDTO struct {
	Envelope    envelopeDTO `json:"envelope"`
	AccessToken string      `json:"accessToken"`
	SigningURL  string      `json:"signingUrl"`
}

func toCreatedEnvelopeDTO(c *envelope.CreatedEnvelope) createdEnvelopeDTO {
	return createdEnvelopeDTO{
		Envelope:    toEnvelopeDTO(c.Envelope),
		AccessToken: c.AccessToken,
		SigningURL:  c.SigningURL,
	}
}

type eventDTO struct {
	Event     string         `json:"event"`
	Actor     string         `json:"actor"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type signingAuditDTO struct {
	IP              string     `json:"ip"`
	ClientIP        string     `json:"clientIp,omitempty"`
	UserAgent       string     `json:"userAgent"`
	ClientTimestamp *time.Time `json:"clientTimestamp,omitempty"`
	ReceivedAt      time.Time  `json:"receivedAt"`
	TemplateSHA256  string     `json:"templateSha256"`
	SealedSHA256    string     `json:"sealedSha256"`
}

type historyDTO struct {
	Envelope envelopeDTO      `json:"envelope"`
	Events   []eventDTO       `json:"events"`
	Signing  *signingAuditDTO `json:"signing,omitempty"`
}

func toHistoryDTO(h *envelope.History) historyDTO {
	out := historyDTO{
		Envelope: toEnvelopeDTO(h.Envelope),
		Events:   make([]eventDTO, len(h.Events)),
	}
	for i, ev := range h.Events {
		out.Events[i] = eventDTO{
			Event:     ev.Event.String(),
			Actor:     ev.Actor,
			Details:   ev.Details,
			CreatedAt: ev.CreatedAt,
		}
	}
	if s := h.Signing; s != nil {
		out.Signing = &signingAuditDTO{
			IP:              s.IP,
			ClientIP:        s.ClientIP,
			UserAgent:       s.UserAgent,
			ClientTimestamp: s.ClientTimestamp,
			ReceivedAt:      s.ReceivedAt,
			TemplateSHA256:  s.TemplateSHA256,
			SealedSHA256:    s.SealedSHA256,
		}
	}
	return out
}

type verificationDTO struct {
	RequestID      string     `json:"requestId"`
	Status         string     `json:"status"`
	SignedAt       *time.Time `json:"signedAt,omitempty"`
	SealedSHA256   string     `json:"sealedSha256,omitempty"`
	TemplateSHA256 string     `json:"templateSha256,omitempty"`
}

func toVerificationDTO(v *signing.Verification) verificationDTO {
	return verificationDTO{
		RequestID:      v.RequestID,
		Status:         string(v.Status),
		SignedAt:       v.SignedAt,
		SealedSHA256:   v.SealedSHA256,
		TemplateSHA256: v.TemplateSHA256,
	}
}

// clientTime accepts the browser's timestamp as RFC 3339 text or as epoch
// milliseconds. It is advisory only: anything else is dropped and leaves
// the timestamp unset instead of failing the submission.
type clientTime struct {
	time.Time
}

func (t *clientTime) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t.Time = parsed.UTC()
		}
		return nil
	}
	if ms, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
	}
	return nil
}

func (t *clientTime) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
