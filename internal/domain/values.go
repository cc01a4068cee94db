package domain

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ImageFormat names a raster format accepted for signature values.
// The values match the image type names understood by the PDF writer.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "PNG"
	ImageFormatJPEG ImageFormat = "JPG"
)

// FieldValue is one recipient-supplied value. Exactly one of Text, Checked
// or Image is meaningful, selected by Kind.
type FieldValue struct {
	Kind        FieldKind
	Text        string
	Checked     bool
	Image       []byte
	ImageFormat ImageFormat
}

// IsEmpty reports whether the value fails to satisfy a required field.
// An unchecked checkbox counts as empty.
func (v FieldValue) IsEmpty() bool {
	switch v.Kind {
	case FieldKindText, FieldKindDate:
		return strings.TrimSpace(v.Text) == ""
	case FieldKindCheckbox:
		return !v.Checked
	case FieldKindSignature:
		return len(v.Image) == 0
	}
	return true
}

// FieldValues maps FieldSpec.ID to the submitted value.
type FieldValues map[string]FieldValue

// MissingRequired returns the ids of required fields without a non-empty
// value, in layout order.
func (vs FieldValues) MissingRequired(fields []FieldSpec) []string {
	var missing []string
	for _, f := range fields {
		if !f.Required {
			continue
		}
		v, ok := vs[f.ID]
		if !ok || v.IsEmpty() {
			missing = append(missing, f.ID)
		}
	}
	return missing
}

const maxTextValueLength = 2000

var (
	errValueType = errors.New("wrong value type")
	errImageData = errors.New("invalid image data")
)

// ParseFieldValue converts a decoded JSON value into a FieldValue of the
// given kind. nil yields an empty value. Signature images larger than
// maxImageBytes are rejected.
func ParseFieldValue(kind FieldKind, raw any, maxImageBytes int) (FieldValue, error) {
	v := FieldValue{Kind: kind}
	if raw == nil {
		return v, nil
	}

	switch kind {
	case FieldKindText, FieldKindDate:
		s, ok := raw.(string)
		if !ok {
			return v, fmt.Errorf("%w: expected string", errValueType)
		}
		if len(s) > maxTextValueLength {
			return v, fmt.Errorf("max %d characters", maxTextValueLength)
		}
		v.Text = s

	case FieldKindCheckbox:
		switch b := raw.(type) {
		case bool:
			v.Checked = b
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "true", "on", "yes":
				v.Checked = true
			case "false", "off", "no", "":
			default:
				return v, fmt.Errorf("%w: expected boolean", errValueType)
			}
		default:
			return v, fmt.Errorf("%w: expected boolean", errValueType)
		}

	case FieldKindSignature:
		s, ok := raw.(string)
		if !ok {
			return v, fmt.Errorf("%w: expected image data", errValueType)
		}
		if strings.TrimSpace(s) == "" {
			return v, nil
		}
		data, format, err := DecodeImageData(s)
		if err != nil {
			return v, err
		}
		if maxImageBytes > 0 && len(data) > maxImageBytes {
			return v, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
		}
		v.Image = data
		v.ImageFormat = format

	default:
		return v, fmt.Errorf("unsupported field type %q", kind)
	}

	return v, nil
}

// DecodeImageData decodes a data URL ("data:image/png;base64,...") or bare
// base64 payload and sniffs the raster format from its magic bytes.
func DecodeImageData(s string) ([]byte, ImageFormat, error) {
	payload := strings.TrimSpace(s)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return nil, "", fmt.Errorf("%w: malformed data url", errImageData)
		}
		meta := payload[len("data:"):comma]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("%w: data url must be base64", errImageData)
		}
		payload = payload[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", errImageData, err)
		}
	}

	format := SniffImageFormat(data)
	if format == "" {
		return nil, "", fmt.Errorf("%w: expected PNG or JPEG", errImageData)
	}
	return data, format, nil
}

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// SniffImageFormat returns the format of data or "" when unrecognised.
func SniffImageFormat(data []byte) ImageFormat {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return ImageFormatPNG
	case bytes.HasPrefix(data, jpegMagic):
		return ImageFormatJPEG
	}
	return ""
}
