package document

// Document is the ordered sequence of blocks across all pages, plus
// top-level metadata and the tag of the detection pipeline that produced
// the underlying inputs. Within a page blocks follow vertical reading
// order; across pages, page order is preserved.
type Document struct {
	Metadata        map[string]any `json:"metadata"`
	Content         []Block        `json:"content"`
	DetectionOrigin string         `json:"detection_origin"`
}

// New creates an empty document for the given detection origin.
func New(origin string) *Document {
	return &Document{
		Metadata:        map[string]any{},
		Content:         []Block{},
		DetectionOrigin: origin,
	}
}

// Append adds a page's finalized blocks to the document in order.
func (d *Document) Append(blocks ...Block) {
	d.Content = append(d.Content, blocks...)
}

// PageCount returns the number of distinct pages covered by the content,
// derived from the highest end page index seen.
func (d *Document) PageCount() int {
	maxPage := -1
	for _, b := range d.Content {
		if b.PageRange.End > maxPage {
			maxPage = b.PageRange.End
		}
	}
	return maxPage + 1
}
