package geometry

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BBox is an axis-aligned bounding box given by its top-left and
// bottom-right corners. Coordinates may be page pixels or normalized
// fractions; the geometry operations are unit-agnostic.
type BBox struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

// NewBBox constructs a BBox from corner coordinates without reordering them.
// Callers are expected to provide valid (non-inverted) corners; use Validate
// to check inputs from external detectors.
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{
		TopLeft:     Point{X: x1, Y: y1},
		BottomRight: Point{X: x2, Y: y2},
	}
}

// Validate reports whether the box satisfies the coordinate contract:
// finite values and top-left not exceeding bottom-right on either axis.
// Inverted boxes are caller errors, never silently corrected.
func (b BBox) Validate() error {
	for _, v := range []float64{b.TopLeft.X, b.TopLeft.Y, b.BottomRight.X, b.BottomRight.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate %v", ErrInvalidBox, v)
		}
	}
	if b.TopLeft.X > b.BottomRight.X || b.TopLeft.Y > b.BottomRight.Y {
		return fmt.Errorf("%w: inverted corners (%v,%v)-(%v,%v)", ErrInvalidBox,
			b.TopLeft.X, b.TopLeft.Y, b.BottomRight.X, b.BottomRight.Y)
	}
	return nil
}

// Width returns the box width.
func (b BBox) Width() float64 { return b.BottomRight.X - b.TopLeft.X }

// Height returns the box height.
func (b BBox) Height() float64 { return b.BottomRight.Y - b.TopLeft.Y }

// Area returns width × height. Zero-area boxes are legal (degenerate
// detections) and simply yield 0.
func (b BBox) Area() float64 { return b.Width() * b.Height() }

// IntersectionArea returns the area of the clipped rectangle intersection
// of a and b, or 0 when they do not overlap. Never negative.
func IntersectionArea(a, b BBox) float64 {
	w := math.Min(a.BottomRight.X, b.BottomRight.X) - math.Max(a.TopLeft.X, b.TopLeft.X)
	h := math.Min(a.BottomRight.Y, b.BottomRight.Y) - math.Max(a.TopLeft.Y, b.TopLeft.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Union returns the smallest box covering both a and b: component-wise
// min of top-lefts and max of bottom-rights.
func Union(a, b BBox) BBox {
	return BBox{
		TopLeft: Point{
			X: math.Min(a.TopLeft.X, b.TopLeft.X),
			Y: math.Min(a.TopLeft.Y, b.TopLeft.Y),
		},
		BottomRight: Point{
			X: math.Max(a.BottomRight.X, b.BottomRight.X),
			Y: math.Max(a.BottomRight.Y, b.BottomRight.Y),
		},
	}
}
