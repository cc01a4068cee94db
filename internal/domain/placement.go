package domain

// Rect is an absolute box on a rendered page. Units follow the page
// dimensions passed to ResolvePlacement (CSS pixels in the browser,
// points in the sealer).
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ResolvePlacement converts a field's relative layout into an absolute box
// on a page rendered at pageWidth x pageHeight. Percent sizes scale with
// the page; legacy pixel sizes are returned unchanged. Missing or
// non-finite coordinates resolve to 0.
func ResolvePlacement(f FieldSpec, pageWidth, pageHeight float64) Rect {
	return ResolvePlacementScaled(f, pageWidth, pageHeight, 1)
}

// ResolvePlacementScaled is ResolvePlacement with legacy pixel sizes
// multiplied by pxScale. The sealer uses it to map pixels measured on the
// authoring render onto PDF points.
func ResolvePlacementScaled(f FieldSpec, pageWidth, pageHeight, pxScale float64) Rect {
	f = f.Normalized()
	pageWidth = finiteOrZero(pageWidth)
	pageHeight = finiteOrZero(pageHeight)

	r := Rect{
		Left: f.XPosition / 100 * pageWidth,
		Top:  f.YPosition / 100 * pageHeight,
	}

	switch f.Unit {
	case SizeUnitPixels:
		r.Width = f.Width * pxScale
		r.Height = f.Height * pxScale
	default:
		r.Width = f.Width / 100 * pageWidth
		r.Height = f.Height / 100 * pageHeight
	}

	return r
}
