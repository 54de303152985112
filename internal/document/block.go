package document

import (
	"github.com/MeKo-Tech/mosaic/internal/geometry"
	"github.com/MeKo-Tech/mosaic/internal/layout"
)

// BlockType tags the variant of a Block. The original class hierarchy keyed
// by label becomes a tagged union dispatched on this type.
type BlockType string

const (
	BlockText        BlockType = "text"
	BlockTitle       BlockType = "title"
	BlockSubTitle    BlockType = "sub_title"
	BlockHeader      BlockType = "header"
	BlockFooter      BlockType = "footer"
	BlockCaption     BlockType = "caption"
	BlockListElement BlockType = "list_element"
	BlockTable       BlockType = "table"
	BlockImage       BlockType = "image"
	BlockUndefined   BlockType = "undefined"
)

// labelBlockTypes is the static label→variant lookup table.
var labelBlockTypes = map[layout.Label]BlockType{
	layout.LabelCaption:     BlockCaption,
	layout.LabelText:        BlockText,
	layout.LabelListElement: BlockListElement,
	layout.LabelFooter:      BlockFooter,
	layout.LabelHeader:      BlockHeader,
	layout.LabelImage:       BlockImage,
	layout.LabelSubTitle:    BlockSubTitle,
	layout.LabelTable:       BlockTable,
	layout.LabelTitle:       BlockTitle,
	layout.LabelUndefined:   BlockUndefined,
}

// TypeForLabel maps a layout label to its block variant. Unknown labels
// degrade to the undefined variant rather than failing: the matcher already
// guarantees every line lands somewhere.
func TypeForLabel(l layout.Label) BlockType {
	if t, ok := labelBlockTypes[l]; ok {
		return t
	}
	return BlockUndefined
}

// AcceptsText reports whether the variant is text-bearing. Image and
// table blocks are populated exclusively by direct region injection,
// never by line-level merging.
func (t BlockType) AcceptsText() bool {
	return t != BlockImage && t != BlockTable
}

// PageRange is the inclusive page-index span a block covers.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Block is one typed unit of the assembled document. Blocks are mutable
// only inside a page's accumulation pass; once the page is finalized they
// are treated as immutable values.
type Block struct {
	Type      BlockType      `json:"type"`
	Box       geometry.BBox  `json:"bbox"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	PageRange PageRange      `json:"page_range"`
}

// NewBlock creates a block for a single page with empty metadata.
func NewBlock(t BlockType, box geometry.BBox, text string, page int) Block {
	return Block{
		Type:      t,
		Box:       box,
		Text:      text,
		Metadata:  map[string]any{},
		PageRange: PageRange{Start: page, End: page},
	}
}
