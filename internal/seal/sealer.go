// Package seal merges recipient values into a template PDF and produces the
// flattened, signed artifact.
package seal

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// ErrInvalidTemplate is returned when the template bytes are not a PDF the
// importer can read.
var ErrInvalidTemplate = errors.New("seal: invalid template")

const (
	mediaBox = "/MediaBox"
	// A4 in points, used when the importer reports no page size.
	a4Width  = 595.28
	a4Height = 841.89
)

// Input is everything needed to seal one envelope.
type Input struct {
	Envelope *domain.Envelope
	Values   domain.FieldValues
	Template []byte

	ReceivedAt time.Time
	IP         string
	UserAgent  string
	// VerifyURL is encoded in the certificate page QR code. Empty skips it.
	VerifyURL string
}

// Output is the sealed artifact and its digests.
type Output struct {
	PDF            []byte
	Pages          int
	TemplateSHA256 string
	SealedSHA256   string
}

// Sealer renders field values onto imported template pages.
type Sealer struct {
	legacyRenderWidth float64
	log               *slog.Logger
	renderers         map[domain.FieldKind]renderer
}

// NewSealer creates a Sealer. legacyRenderWidth is the page width in pixels
// that legacy absolute field sizes were measured against.
func NewSealer(logger *slog.Logger, legacyRenderWidth float64) *Sealer {
	if legacyRenderWidth <= 0 {
		legacyRenderWidth = 800
	}
	return &Sealer{
		legacyRenderWidth: legacyRenderWidth,
		log:               logger.With("component", "sealer"),
		renderers:         defaultRenderers(),
	}
}

// Seal produces the signed PDF. The template is never modified.
func (s *Sealer) Seal(ctx context.Context, in Input) (out Output, err error) {
	if in.Envelope == nil {
		return Output{}, fmt.Errorf("seal: envelope is required")
	}
	if err := CheckTemplate(in.Template); err != nil {
		return Output{}, err
	}

	// The importer panics on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidTemplate, r)
		}
	}()

	start := time.Now()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetTitle(in.Envelope.Title, true)
	pdf.SetCreator("signroom", false)
	pdf.SetCreationDate(in.ReceivedAt)
	pdf.SetModificationDate(in.ReceivedAt)
	pdf.SetFont("Helvetica", "", 11)

	surf := &surface{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	imp := gofpdi.NewImporter()
	var rs io.ReadSeeker = bytes.NewReader(in.Template)

	first := imp.ImportPageFromStream(pdf, &rs, 1, mediaBox)
	sizes := imp.GetPageSizes()
	pageCount := len(sizes)
	if pageCount == 0 {
		return Output{}, fmt.Errorf("%w: no pages", ErrInvalidTemplate)
	}

	byPage := make(map[int][]domain.FieldSpec)
	for _, f := range in.Envelope.Fields {
		if f.PageNumber > pageCount {
			return Output{}, fmt.Errorf("seal: field %q on page %d, template has %d", f.ID, f.PageNumber, pageCount)
		}
		byPage[f.PageNumber] = append(byPage[f.PageNumber], f)
	}

	rendered := 0
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}

		w, h := pageSize(sizes, page)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})

		tpl := first
		if page > 1 {
			tpl = imp.ImportPageFromStream(pdf, &rs, page, mediaBox)
		}
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)

		pxScale := w / s.legacyRenderWidth
		for _, f := range byPage[page] {
			v, ok := in.Values[f.ID]
			if !ok || v.IsEmpty() {
				continue
			}
			render, ok := s.renderers[f.Kind]
			if !ok {
				return Output{}, fmt.Errorf("seal: no renderer for field type %q", f.Kind)
			}
			box := domain.ResolvePlacementScaled(f, w, h, pxScale)
			if err := render(surf, box, f, v); err != nil {
				return Output{}, fmt.Errorf("seal: render field %q: %w", f.ID, err)
			}
			rendered++
		}
	}

	if err := s.certificatePage(surf, in, pageCount); err != nil {
		return Output{}, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Output{}, fmt.Errorf("seal: write pdf: %w", err)
	}

	out = Output{
		PDF:            buf.Bytes(),
		Pages:          pageCount + 1,
		TemplateSHA256: Digest(in.Template),
		SealedSHA256:   Digest(buf.Bytes()),
	}

	s.log.DebugContext(ctx, "envelope sealed",
		slog.String("envelope", in.Envelope.Key().String()),
		slog.Int("pages", out.Pages),
		slog.Int("fields_rendered", rendered),
		slog.Duration("duration", time.Since(start)),
	)

	return out, nil
}

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func pageSize(sizes map[int]map[string]map[string]float64, page int) (float64, float64) {
	box, ok := sizes[page][mediaBox]
	if !ok || box["w"] <= 0 || box["h"] <= 0 {
		return a4Width, a4Height
	}
	return box["w"], box["h"]
}
