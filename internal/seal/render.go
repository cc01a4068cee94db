package seal

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/jung-kurt/gofpdf"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// surface is the PDF being written plus its text translator.
type surface struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// renderer draws one field value into box (points, top-left origin).
type renderer func(s *surface, box domain.Rect, f domain.FieldSpec, v domain.FieldValue) error

func defaultRenderers() map[domain.FieldKind]renderer {
	return map[domain.FieldKind]renderer{
		domain.FieldKindText:      renderText,
		domain.FieldKindDate:      renderText,
		domain.FieldKindCheckbox:  renderCheckbox,
		domain.FieldKindSignature: renderSignature,
	}
}

const (
	minFontSize = 5.0
	maxFontSize = 16.0
	textPadding = 2.0
)

func renderText(s *surface, box domain.Rect, _ domain.FieldSpec, v domain.FieldValue) error {
	text := s.tr(v.Text)

	size := math.Min(math.Max(box.Height*0.7, minFontSize), maxFontSize)
	s.pdf.SetFont("Helvetica", "", size)
	avail := box.Width - 2*textPadding
	for size > minFontSize && s.pdf.GetStringWidth(text) > avail {
		size -= 0.5
		s.pdf.SetFontSize(size)
	}

	s.pdf.SetTextColor(0, 0, 0)
	baseline := box.Top + (box.Height+size*0.7)/2
	s.pdf.Text(box.Left+textPadding, baseline, text)
	return nil
}

func renderCheckbox(s *surface, box domain.Rect, _ domain.FieldSpec, v domain.FieldValue) error {
	if !v.Checked {
		return nil
	}
	side := math.Min(box.Width, box.Height)
	x := box.Left + (box.Width-side)/2
	y := box.Top + (box.Height-side)/2

	s.pdf.SetDrawColor(0, 0, 0)
	s.pdf.SetLineWidth(math.Max(side*0.12, 0.8))
	s.pdf.SetLineCapStyle("round")
	s.pdf.SetLineJoinStyle("round")
	s.pdf.Line(x+side*0.18, y+side*0.55, x+side*0.42, y+side*0.8)
	s.pdf.Line(x+side*0.42, y+side*0.8, x+side*0.84, y+side*0.2)
	return nil
}

var imageSeq atomic.Uint64

func renderSignature(s *surface, box domain.Rect, f domain.FieldSpec, v domain.FieldValue) error {
	opts := gofpdf.ImageOptions{ImageType: string(v.ImageFormat), ReadDpi: false}
	name := fmt.Sprintf("sig-%s-%d", f.ID, imageSeq.Add(1))

	info := s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(v.Image))
	if !s.pdf.Ok() {
		return fmt.Errorf("register image: %w", s.pdf.Error())
	}
	if info == nil {
		return errors.New("register image: no image info")
	}

	w, h := fitInto(info.Width(), info.Height(), box.Width, box.Height)
	x := box.Left + (box.Width-w)/2
	y := box.Top + (box.Height-h)/2
	s.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

// fitInto scales (w, h) to the largest size inside (maxW, maxH) that keeps
// the aspect ratio.
func fitInto(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := math.Min(maxW/w, maxH/h)
	return w * scale, h * scale
}
