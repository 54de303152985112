package assembler

import (
	"fmt"

	"github.com/MeKo-Tech/mosaic/internal/document"
	"github.com/MeKo-Tech/mosaic/internal/geometry"
	"github.com/MeKo-Tech/mosaic/internal/layout"
)

// Accumulator builds a page's in-progress blocks, keyed by the matched
// region identifier (or a generated one for unmatched lines). It is the
// sole mutator of blocks during a page pass and must not be shared
// between goroutines.
type Accumulator struct {
	page   int
	blocks map[string]*document.Block
	order  []string
}

// NewAccumulator creates an empty accumulator for the given page index.
func NewAccumulator(page int) *Accumulator {
	return &Accumulator{
		page:   page,
		blocks: make(map[string]*document.Block),
	}
}

// Add merges a text line into the block identified by id. The first line
// for an identifier instantiates the block variant for the label; later
// lines append "\n"+text and expand the box to the union. Labels mapping
// to non-text variants are rejected: image and table regions are
// populated exclusively by direct injection, never by line merging.
func (a *Accumulator) Add(id string, label layout.Label, text string, box geometry.BBox) error {
	if b, ok := a.blocks[id]; ok {
		if !b.Type.AcceptsText() {
			return fmt.Errorf("%w: text line merged into non-text block %s (%s)",
				ErrBlockConflict, id, b.Type)
		}
		b.Text += "\n" + text
		b.Box = geometry.Union(b.Box, box)
		return nil
	}

	bt := document.TypeForLabel(label)
	if !bt.AcceptsText() {
		return fmt.Errorf("%w: text line matched %s region %s",
			ErrBlockConflict, label, id)
	}
	blk := document.NewBlock(bt, box, text, a.page)
	a.blocks[id] = &blk
	a.order = append(a.order, id)
	return nil
}

// Has reports whether the identifier already holds an in-progress block.
func (a *Accumulator) Has(id string) bool {
	_, ok := a.blocks[id]
	return ok
}

// Len returns the number of in-progress blocks.
func (a *Accumulator) Len() int { return len(a.blocks) }

// Finalize returns the accumulated blocks as immutable values, in
// insertion order. The accumulator must not be used afterwards.
func (a *Accumulator) Finalize() []document.Block {
	out := make([]document.Block, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.blocks[id])
	}
	a.blocks = nil
	a.order = nil
	return out
}
