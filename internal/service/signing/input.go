package signing

import (
	"strings"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

const (
	maxKeyPartLength = 128
	maxTokenLength   = 512
	maxUserAgent     = 1024
	maxClientIP      = 64
)

// PublicEnvelopeInput identifies an envelope through its signing link.
type PublicEnvelopeInput struct {
	CompanyID   string
	RequestID   string
	AccessToken string
}

// Validate checks all fields and collects all errors.
func (i PublicEnvelopeInput) Validate() error {
	errs := validateLink(i.CompanyID, i.RequestID, i.AccessToken)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i PublicEnvelopeInput) key() domain.EnvelopeKey {
	return domain.EnvelopeKey{CompanyID: i.CompanyID, RequestID: i.RequestID}
}

// SubmitInput holds a recipient's single submission. FieldValues carries the
// decoded JSON values keyed by field id; they are typed against the layout.
type SubmitInput struct {
	CompanyID   string
	RequestID   string
	AccessToken string
	FieldValues map[string]any
	AuditData   domain.AuditData
}

// Validate checks the shape of the request. Values are checked against the
// envelope's layout later.
func (i SubmitInput) Validate() error {
	errs := validateLink(i.CompanyID, i.RequestID, i.AccessToken)

	if len(i.AuditData.UserAgent) > maxUserAgent {
		errs = append(errs, domain.FieldError{Field: "auditData.userAgent", Message: "too long"})
	}
	if len(i.AuditData.IP) > maxClientIP {
		errs = append(errs, domain.FieldError{Field: "auditData.ip", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i SubmitInput) key() domain.EnvelopeKey {
	return domain.EnvelopeKey{CompanyID: i.CompanyID, RequestID: i.RequestID}
}

func validateLink(companyID, requestID, token string) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(companyID) == "" {
		errs = append(errs, domain.FieldError{Field: "companyId", Message: "required"})
	} else if len(companyID) > maxKeyPartLength {
		errs = append(errs, domain.FieldError{Field: "companyId", Message: "too long"})
	}

	if strings.TrimSpace(requestID) == "" {
		errs = append(errs, domain.FieldError{Field: "requestId", Message: "required"})
	} else if len(requestID) > maxKeyPartLength {
		errs = append(errs, domain.FieldError{Field: "requestId", Message: "too long"})
	}

	if token == "" {
		errs = append(errs, domain.FieldError{Field: "accessToken", Message: "required"})
	} else if len(token) > maxTokenLength {
		errs = append(errs, domain.FieldError{Field: "accessToken", Message: "too long"})
	}

	return errs
}
