package signing

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // decoder for JPEG signatures
	_ "image/png"  // decoder for PNG signatures
	"sort"

	"github.com/heartmarshall/signroom-backend/internal/canvas"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// maxSignaturePixels bounds decoded signature images.
const maxSignaturePixels = 4096 * 4096

// parseValues types the raw submission against the layout. Unknown ids,
// kind mismatches and bad images are reported per field; a blank signature
// counts as not provided so the required check catches it.
func parseValues(fields []domain.FieldSpec, raw map[string]any, maxImageBytes int) (domain.FieldValues, []domain.FieldError) {
	var errs []domain.FieldError
	known := make(map[string]bool, len(fields))
	values := make(domain.FieldValues, len(fields))

	for _, f := range fields {
		known[f.ID] = true

		v, err := domain.ParseFieldValue(f.Kind, raw[f.ID], maxImageBytes)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: f.ID, Message: err.Error()})
			continue
		}
		if f.Kind == domain.FieldKindSignature && len(v.Image) > 0 {
			blank, err := signatureIsBlank(v.Image)
			if err != nil {
				errs = append(errs, domain.FieldError{Field: f.ID, Message: err.Error()})
				continue
			}
			if blank {
				v.Image, v.ImageFormat = nil, ""
			}
		}
		if !v.IsEmpty() {
			values[f.ID] = v
		}
	}

	// Sorted so the error list is stable for the caller.
	var unknown []string
	for id := range raw {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		errs = append(errs, domain.FieldError{Field: id, Message: "unknown field"})
	}

	return values, errs
}

// signatureIsBlank decodes a signature image and reports whether it has
// no ink.
func signatureIsBlank(data []byte) (bool, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("invalid image data")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxSignaturePixels {
		return false, fmt.Errorf("image dimensions out of range")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("invalid image data")
	}
	return canvas.IsBlankImage(img), nil
}
