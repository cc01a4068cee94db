package envelope

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

const (
	maxTitleLength     = 200
	maxNameLength      = 200
	maxEmailLength     = 320
	maxURLLength       = 2048
	maxFields          = 200
	maxRequestIDLength = 128
)

// CreateEnvelopeInput holds the parameters for creating an envelope.
type CreateEnvelopeInput struct {
	Title          string
	RecipientName  string
	RecipientEmail string
	// TemplateURL is an http(s) URL or a "blob:<key>" reference to a
	// template stored under the caller's company.
	TemplateURL string
	Fields      []domain.FieldSpec
	// Draft keeps the envelope unsent until Dispatch.
	Draft bool
}

// Validate checks all fields and collects all errors.
func (i CreateEnvelopeInput) Validate() error {
	var errs []domain.FieldError

	errs = appendText(errs, "title", i.Title, maxTitleLength)
	errs = appendText(errs, "recipientName", i.RecipientName, maxNameLength)

	email := strings.TrimSpace(i.RecipientEmail)
	switch {
	case email == "":
		errs = append(errs, domain.FieldError{Field: "recipientEmail", Message: "required"})
	case len(email) > maxEmailLength:
		errs = append(errs, domain.FieldError{Field: "recipientEmail", Message: fmt.Sprintf("max %d characters", maxEmailLength)})
	default:
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			errs = append(errs, domain.FieldError{Field: "recipientEmail", Message: "invalid email address"})
		}
	}

	if msg := checkTemplateURL(strings.TrimSpace(i.TemplateURL)); msg != "" {
		errs = append(errs, domain.FieldError{Field: "templatePdfUrl", Message: msg})
	}

	switch {
	case len(i.Fields) == 0:
		errs = append(errs, domain.FieldError{Field: "fields", Message: "at least one field required"})
	case len(i.Fields) > maxFields:
		errs = append(errs, domain.FieldError{Field: "fields", Message: fmt.Sprintf("max %d fields", maxFields)})
	default:
		errs = append(errs, domain.ValidateLayout(i.Fields)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendText(errs []domain.FieldError, field, value string, maxLen int) []domain.FieldError {
	value = strings.TrimSpace(value)
	if value == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len([]rune(value)) > maxLen {
		return append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("max %d characters", maxLen)})
	}
	return errs
}

// checkTemplateURL returns a validation message, or "" when ref is usable.
func checkTemplateURL(ref string) string {
	if ref == "" {
		return "required"
	}
	if len(ref) > maxURLLength {
		return fmt.Sprintf("max %d characters", maxURLLength)
	}
	if strings.HasPrefix(ref, blob.TemplateRefPrefix) {
		if _, ok := blob.ParseTemplateRef(ref); !ok {
			return "invalid storage path"
		}
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "must be an http(s) URL or a blob: reference"
	}
	return ""
}

// ListInput holds the parameters for listing envelopes.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", MaxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
