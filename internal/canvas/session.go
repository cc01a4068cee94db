// Package canvas captures freehand signatures into a raster image.
//
// A Session owns one bitmap. Pointer and touch events arrive in CSS pixels
// relative to the viewport together with the element's bounding rectangle;
// the session maps them into bitmap pixels so strokes land under the cursor
// whatever the CSS scaling or device pixel ratio.
package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
)

// Point is a position in bitmap pixels.
type Point struct {
	X, Y float64
}

// ClientRect is an element's bounding rectangle in CSS pixels.
type ClientRect struct {
	Left, Top, Width, Height float64
}

// PointerEvent is a mouse, pen or touch event as reported by the browser.
// For touch events Touches holds the active touch points in client
// coordinates and the first one is used.
type PointerEvent struct {
	ClientX, ClientY float64
	Rect             ClientRect
	Touches          []Point
}

const (
	defaultPenWidth = 2.5
	circleSegments  = 16
	maxDimension    = 4096
)

// Option configures a Session.
type Option func(*Session)

// WithPenWidth sets the stroke width in bitmap pixels.
func WithPenWidth(w float64) Option {
	return func(s *Session) {
		if w > 0 {
			s.penWidth = w
		}
	}
}

// WithPenColor sets the stroke color.
func WithPenColor(c color.Color) Option {
	return func(s *Session) {
		s.pen = image.NewUniform(c)
	}
}

// Session is one signature capture. It is not safe for concurrent use.
type Session struct {
	img      *image.RGBA
	raster   *vector.Rasterizer
	penWidth float64
	pen      image.Image

	drawing bool
	strokes [][]Point
}

// NewSession creates an empty, fully transparent canvas of width x height
// bitmap pixels.
func NewSession(width, height int, opts ...Option) (*Session, error) {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("canvas: invalid size %dx%d", width, height)
	}

	s := &Session{
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		raster:   vector.NewRasterizer(width, height),
		penWidth: defaultPenWidth,
		pen:      image.NewUniform(color.Black),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Bounds returns the bitmap rectangle.
func (s *Session) Bounds() image.Rectangle { return s.img.Bounds() }

// Image returns the live bitmap. Callers must not modify it.
func (s *Session) Image() image.Image { return s.img }

// Begin starts a stroke at the event position and inks a dot there.
func (s *Session) Begin(ev PointerEvent) {
	p := s.toBitmap(ev)
	s.drawing = true
	s.strokes = append(s.strokes, []Point{p})
	s.dot(p)
}

// Extend continues the current stroke. Events outside a stroke are ignored.
func (s *Session) Extend(ev PointerEvent) {
	if !s.drawing || len(s.strokes) == 0 {
		return
	}
	p := s.toBitmap(ev)
	cur := s.strokes[len(s.strokes)-1]
	last := cur[len(cur)-1]
	s.strokes[len(s.strokes)-1] = append(cur, p)
	s.segment(last, p)
	s.dot(p)
}

// End finishes the current stroke.
func (s *Session) End() {
	s.drawing = false
}

// Clear erases the bitmap and forgets all strokes.
func (s *Session) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.strokes = nil
	s.drawing = false
}

// Undo removes the most recent stroke and repaints the rest.
func (s *Session) Undo() {
	if len(s.strokes) == 0 {
		return
	}
	rest := s.strokes[:len(s.strokes)-1]
	s.Clear()
	for _, stroke := range rest {
		s.replay(stroke)
	}
}

// StrokeCount returns the number of strokes drawn since the last Clear.
func (s *Session) StrokeCount() int { return len(s.strokes) }

// IsEmpty reports whether the bitmap carries no ink. It inspects pixels,
// so a canvas whose strokes were all undone is empty again.
func (s *Session) IsEmpty() bool {
	return IsBlankImage(s.img)
}

// ErrEmpty is returned when exporting a canvas with no ink.
var ErrEmpty = errors.New("canvas: empty")

// ExportPNG encodes the bitmap as PNG. Nothing is persisted until the
// caller does so with the returned bytes.
func (s *Session) ExportPNG() ([]byte, error) {
	if s.IsEmpty() {
		return nil, ErrEmpty
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.img); err != nil {
		return nil, fmt.Errorf("canvas: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// toBitmap maps client coordinates into bitmap pixels:
// (client - rect.origin) * (bitmap size / rect size).
func (s *Session) toBitmap(ev PointerEvent) Point {
	x, y := ev.ClientX, ev.ClientY
	if len(ev.Touches) > 0 {
		x, y = ev.Touches[0].X, ev.Touches[0].Y
	}

	b := s.img.Bounds()
	sx, sy := 1.0, 1.0
	if ev.Rect.Width > 0 {
		sx = float64(b.Dx()) / ev.Rect.Width
	}
	if ev.Rect.Height > 0 {
		sy = float64(b.Dy()) / ev.Rect.Height
	}
	return Point{
		X: finite((x - ev.Rect.Left) * sx),
		Y: finite((y - ev.Rect.Top) * sy),
	}
}

func (s *Session) replay(stroke []Point) {
	if len(stroke) == 0 {
		return
	}
	s.strokes = append(s.strokes, []Point{stroke[0]})
	s.dot(stroke[0])
	for i := 1; i < len(stroke); i++ {
		s.strokes[len(s.strokes)-1] = append(s.strokes[len(s.strokes)-1], stroke[i])
		s.segment(stroke[i-1], stroke[i])
		s.dot(stroke[i])
	}
}

// segment fills the quad covering a line of penWidth between a and b.
func (s *Session) segment(a, b Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := s.penWidth / 2
	nx, ny := -dy/length*half, dx/length*half

	s.raster.Reset(s.img.Bounds().Dx(), s.img.Bounds().Dy())
	s.raster.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	s.raster.LineTo(float32(b.X+nx), float32(b.Y+ny))
	s.raster.LineTo(float32(b.X-nx), float32(b.Y-ny))
	s.raster.LineTo(float32(a.X-nx), float32(a.Y-ny))
	s.raster.ClosePath()
	s.raster.Draw(s.img, s.img.Bounds(), s.pen, image.Point{})
}

// dot fills a round join of penWidth diameter centred on p.
func (s *Session) dot(p Point) {
	r := s.penWidth / 2
	s.raster.Reset(s.img.Bounds().Dx(), s.img.Bounds().Dy())
	for i := 0; i <= circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / circleSegments
		x := float32(p.X + r*math.Cos(theta))
		y := float32(p.Y + r*math.Sin(theta))
		if i == 0 {
			s.raster.MoveTo(x, y)
			continue
		}
		s.raster.LineTo(x, y)
	}
	s.raster.ClosePath()
	s.raster.Draw(s.img, s.img.Bounds(), s.pen, image.Point{})
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
