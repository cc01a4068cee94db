package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/heartmarshall/signroom-backend/internal/canvas"
)

// strokeFile is a recorded signature: the pad size in CSS pixels and each
// stroke as the sequence of pointer positions within it.
type strokeFile struct {
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Strokes [][]strokePoint `json:"strokes"`
}

type strokePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func loadStrokes(path string) (*strokeFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strokes: %w", err)
	}
	var sf strokeFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse strokes %s: %w", path, err)
	}
	if sf.Width <= 0 || sf.Height <= 0 {
		return nil, fmt.Errorf("strokes %s: width and height must be > 0", path)
	}
	return &sf, nil
}

// render replays the strokes on a signature pad of the recorded size and
// returns the PNG export. An empty drawing yields canvas.ErrEmpty.
func (sf *strokeFile) render() ([]byte, error) {
	s, err := canvas.NewSession(int(sf.Width), int(sf.Height))
	if err != nil {
		return nil, err
	}
	rect := canvas.ClientRect{Width: sf.Width, Height: sf.Height}

	for _, stroke := range sf.Strokes {
		for i, p := range stroke {
			ev := canvas.PointerEvent{ClientX: p.X, ClientY: p.Y, Rect: rect}
			if i == 0 {
				s.Begin(ev)
				continue
			}
			s.Extend(ev)
		}
		if len(stroke) > 0 {
			s.End()
		}
	}
	return s.ExportPNG()
}

func pngDataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
