package canvas

import "image"

// inkAlpha is the 16-bit alpha below which a pixel counts as transparent.
const inkAlpha = 0x0400

// IsBlankImage reports whether img carries no ink. A pixel carries ink
// when it is not transparent and not white, so both transparent canvases
// and opaque white uploads (JPEG has no alpha) are recognised as blank.
func IsBlankImage(img image.Image) bool {
	if img == nil {
		return true
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return isBlankRGBA(rgba)
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if isInk(r, g, bl, a) {
				return false
			}
		}
	}
	return true
}

func isBlankRGBA(img *image.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			a := uint32(row[i+3])
			if a == 0 {
				continue
			}
			r, g, bl := uint32(row[i]), uint32(row[i+1]), uint32(row[i+2])
			if isInk(r|r<<8, g|g<<8, bl|bl<<8, a|a<<8) {
				return false
			}
		}
	}
	return true
}

// isInk takes alpha-premultiplied 16-bit channels. White at any alpha has
// r = g = b = a, so ink is any visible pixel noticeably darker than that.
func isInk(r, g, b, a uint32) bool {
	if a < inkAlpha {
		return false
	}
	lo := min(r, g, b)
	return a-lo > a/16
}
