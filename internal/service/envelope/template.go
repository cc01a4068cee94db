package envelope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob"
	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/seal"
)

const pdfContentType = "application/pdf"

// UploadedTemplate is a stored template ready to back new envelopes.
type UploadedTemplate struct {
	// Ref is the "blob:<key>" value to pass as templatePdfUrl.
	Ref    string
	Key    string
	SHA256 string
	Size   int
}

// UploadTemplate stores a PDF template under the caller's company. The
// document must pass seal.CheckTemplate so that a sealed submission can
// never be handed a file the PDF reader cannot parse.
func (s *Service) UploadTemplate(ctx context.Context, data []byte) (*UploadedTemplate, error) {
	operatorID, companyID, err := operator(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError("file", "required")
	}
	if err := seal.CheckTemplate(data); err != nil {
		return nil, domain.NewValidationError("file", "not a readable PDF document")
	}

	key := blob.TemplateKey(companyID, uuid.NewString())
	if err := s.blobs.Put(ctx, key, data, pdfContentType); err != nil {
		return nil, fmt.Errorf("store template: %w", err)
	}

	out := &UploadedTemplate{
		Ref:    blob.TemplateRefPrefix + key,
		Key:    key,
		SHA256: seal.Digest(data),
		Size:   len(data),
	}
	s.log.InfoContext(ctx, "template uploaded",
		slog.String("company_id", companyID),
		slog.String("operator_id", operatorID),
		slog.String("key", key),
		slog.Int("size", out.Size),
	)
	return out, nil
}
