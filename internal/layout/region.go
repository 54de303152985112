package layout

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/mosaic/internal/geometry"
)

// Label is the semantic category assigned to a page area by the upstream
// layout detector.
type Label string

const (
	LabelCaption     Label = "caption"
	LabelText        Label = "text"
	LabelListElement Label = "list_element"
	LabelFooter      Label = "footer"
	LabelHeader      Label = "header"
	LabelImage       Label = "image"
	LabelSubTitle    Label = "sub_title"
	LabelTable       Label = "table"
	LabelTitle       Label = "title"
	LabelUndefined   Label = "undefined"
)

// classIDLabels maps the layout detector's numeric class ids (DocLayNet
// ordering) to labels. Footnotes and formulas carry no dedicated block
// variant and collapse into plain text.
var classIDLabels = map[int]Label{
	0:  LabelCaption,
	1:  LabelText, // footnote
	2:  LabelText, // formula
	3:  LabelListElement,
	4:  LabelFooter,
	5:  LabelHeader,
	6:  LabelImage,
	7:  LabelSubTitle,
	8:  LabelTable,
	9:  LabelText,
	10: LabelTitle,
}

// LabelFromClassID resolves a detector class id to a label.
func LabelFromClassID(id int) (Label, error) {
	l, ok := classIDLabels[id]
	if !ok {
		return LabelUndefined, fmt.Errorf("unknown layout class id %d", id)
	}
	return l, nil
}

// ParseLabel parses a label string, accepting a few common aliases emitted
// by different detector front-ends.
func ParseLabel(s string) (Label, error) {
	switch Label(strings.ToLower(strings.TrimSpace(s))) {
	case LabelCaption:
		return LabelCaption, nil
	case LabelText, "paragraph":
		return LabelText, nil
	case LabelListElement, "list-item", "list_item":
		return LabelListElement, nil
	case LabelFooter, "page-footer", "page_footer":
		return LabelFooter, nil
	case LabelHeader, "page-header", "page_header":
		return LabelHeader, nil
	case LabelImage, "picture", "figure":
		return LabelImage, nil
	case LabelSubTitle, "subtitle", "section-header", "section_header":
		return LabelSubTitle, nil
	case LabelTable:
		return LabelTable, nil
	case LabelTitle:
		return LabelTitle, nil
	case LabelUndefined:
		return LabelUndefined, nil
	}
	return LabelUndefined, fmt.Errorf("unknown layout label %q", s)
}

// Standalone reports whether regions with this label are emitted as
// independent blocks rather than populated by text-line matching.
func (l Label) Standalone() bool {
	return l == LabelImage || l == LabelTable
}

// Region is one layout-detector output for a page. Regions are immutable
// inputs to assembly; the identifier is the detector's stable id for the
// area and keys block accumulation.
type Region struct {
	ID    string        `json:"id"`
	Label Label         `json:"label"`
	Box   geometry.BBox `json:"bbox"`
}

// Validate checks the region's geometry and label.
func (r Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("layout region missing identifier")
	}
	if _, err := ParseLabel(string(r.Label)); err != nil {
		return fmt.Errorf("layout region %s: %w", r.ID, err)
	}
	if err := r.Box.Validate(); err != nil {
		return fmt.Errorf("layout region %s: %w", r.ID, err)
	}
	return nil
}
