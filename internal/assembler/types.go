package assembler

import (
	"fmt"

	"github.com/MeKo-Tech/mosaic/internal/geometry"
	"github.com/MeKo-Tech/mosaic/internal/layout"
)

// Line is one recognized line of OCR text: the geometries of its
// constituent words plus the rendered text. Lines are immutable inputs,
// consumed once during a page's assembly pass.
type Line struct {
	Words []geometry.BBox `json:"word_geometries"`
	Text  string          `json:"text"`
}

// BoundingBox derives the line's bounding box as the union of its word
// geometries. A line without words has no defined box and fails with
// ErrEmptyLineGeometry; invalid word boxes surface as geometry errors.
func (l Line) BoundingBox() (geometry.BBox, error) {
	if len(l.Words) == 0 {
		return geometry.BBox{}, ErrEmptyLineGeometry
	}
	box := l.Words[0]
	for i, w := range l.Words {
		if err := w.Validate(); err != nil {
			return geometry.BBox{}, fmt.Errorf("word %d: %w", i, err)
		}
		box = geometry.Union(box, w)
	}
	return box, nil
}

// Page is one document page as consumed by assembly: its raster
// dimensions plus the text lines and layout regions detected on it.
// Regions arrive pre-sorted by the upstream detector's confidence order,
// which drives the matcher's tie-break.
type Page struct {
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Lines   []Line          `json:"lines"`
	Regions []layout.Region `json:"regions"`
}
