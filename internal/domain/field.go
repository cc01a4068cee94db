package domain

import (
	"fmt"
	"math"
	"strings"
)

// FieldSpec is one interactive placeholder on the envelope's document.
// XPosition and YPosition are percentages of the rendered page size.
// Width and Height are percentages or legacy pixels, see EffectiveUnit.
type FieldSpec struct {
	ID         string
	Kind       FieldKind
	PageNumber int
	XPosition  float64
	YPosition  float64
	Width      float64
	Height     float64
	Unit       SizeUnit
	Required   bool
	Label      string
}

// legacyPercentThreshold is the magnitude below which untagged sizes are
// read as percentages.
const legacyPercentThreshold = 100

// EffectiveUnit returns the explicit unit, or infers one from Width for
// records written before units were stored.
func (f FieldSpec) EffectiveUnit() SizeUnit {
	if f.Unit != SizeUnitUnspecified {
		return f.Unit
	}
	if f.Width < legacyPercentThreshold {
		return SizeUnitPercent
	}
	return SizeUnitPixels
}

// Normalized returns a copy with the unit made explicit and non-finite
// numbers zeroed.
func (f FieldSpec) Normalized() FieldSpec {
	f.Unit = f.EffectiveUnit()
	f.XPosition = finiteOrZero(f.XPosition)
	f.YPosition = finiteOrZero(f.YPosition)
	f.Width = finiteOrZero(f.Width)
	f.Height = finiteOrZero(f.Height)
	f.ID = strings.TrimSpace(f.ID)
	f.Label = strings.TrimSpace(f.Label)
	return f
}

const (
	maxFieldIDLength    = 64
	maxFieldLabelLength = 200
)

// Validate checks a single FieldSpec and returns its errors, prefixed with
// the field's position in the layout.
func (f FieldSpec) Validate(index int) []FieldError {
	var errs []FieldError
	p := func(name string) string { return fmt.Sprintf("fields[%d].%s", index, name) }

	id := strings.TrimSpace(f.ID)
	if id == "" {
		errs = append(errs, FieldError{Field: p("id"), Message: "required"})
	}
	if len(id) > maxFieldIDLength {
		errs = append(errs, FieldError{Field: p("id"), Message: fmt.Sprintf("max %d characters", maxFieldIDLength)})
	}
	if !f.Kind.IsValid() {
		errs = append(errs, FieldError{Field: p("type"), Message: "must be one of text, date, checkbox, signature"})
	}
	if f.PageNumber < 1 {
		errs = append(errs, FieldError{Field: p("pageNumber"), Message: "must be >= 1"})
	}
	if !inPercentRange(f.XPosition) {
		errs = append(errs, FieldError{Field: p("xPosition"), Message: "must be between 0 and 100"})
	}
	if !inPercentRange(f.YPosition) {
		errs = append(errs, FieldError{Field: p("yPosition"), Message: "must be between 0 and 100"})
	}
	if !(f.Width > 0) || math.IsInf(f.Width, 0) {
		errs = append(errs, FieldError{Field: p("width"), Message: "must be > 0"})
	}
	if !(f.Height > 0) || math.IsInf(f.Height, 0) {
		errs = append(errs, FieldError{Field: p("height"), Message: "must be > 0"})
	}
	if !f.Unit.IsValid() {
		errs = append(errs, FieldError{Field: p("unit"), Message: "must be percent or px"})
	} else if f.EffectiveUnit() == SizeUnitPercent {
		if f.Width > 100 {
			errs = append(errs, FieldError{Field: p("width"), Message: "max 100 for percent units"})
		}
		if f.Height > 100 {
			errs = append(errs, FieldError{Field: p("height"), Message: "max 100 for percent units"})
		}
	}
	if len(f.Label) > maxFieldLabelLength {
		errs = append(errs, FieldError{Field: p("label"), Message: fmt.Sprintf("max %d characters", maxFieldLabelLength)})
	}

	return errs
}

// ValidateLayout validates every field and checks that ids are unique.
func ValidateLayout(fields []FieldSpec) []FieldError {
	var errs []FieldError
	seen := make(map[string]int, len(fields))
	for i, f := range fields {
		errs = append(errs, f.Validate(i)...)
		id := strings.TrimSpace(f.ID)
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("fields[%d].id", i),
				Message: fmt.Sprintf("duplicates fields[%d].id", first),
			})
			continue
		}
		seen[id] = i
	}
	return errs
}

func inPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
