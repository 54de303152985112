package assembler

import (
	"github.com/MeKo-Tech/mosaic/internal/geometry"
	"github.com/MeKo-Tech/mosaic/internal/layout"
	"github.com/google/uuid"
)

// DefaultOverlapThreshold is the fraction of a line's area that must be
// covered by a region before the line is attributed to it.
const DefaultOverlapThreshold = 0.6

// MatchRegion selects the layout region a text line belongs to.
//
// Regions are scanned in their given order and the first whose overlap
// ratio strictly exceeds the threshold wins; earlier regions deliberately
// take priority over later ones with equal overlap. The ratio is the
// intersection area divided by the line's own area, not a symmetric IoU,
// so a small line fully inside a large region always matches. Zero-area
// lines never match.
//
// When no region qualifies, a freshly generated identifier with the
// undefined label is returned: every line produces a block, none are
// dropped. Both boxes must already be validated.
func MatchRegion(lineBox geometry.BBox, regions []layout.Region, threshold float64) (string, layout.Label) {
	if lineArea := lineBox.Area(); lineArea > 0 {
		for _, r := range regions {
			if geometry.IntersectionArea(lineBox, r.Box)/lineArea > threshold {
				return r.ID, r.Label
			}
		}
	}
	return uuid.NewString(), layout.LabelUndefined
}
