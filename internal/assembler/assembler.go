package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/MeKo-Tech/mosaic/internal/document"
	"github.com/MeKo-Tech/mosaic/internal/textutil"
)

// DefaultDetectionOrigin tags documents whose inputs came from the
// default doctr-style detection pipeline.
const DefaultDetectionOrigin = "doctr"

// Config holds configuration for document assembly.
type Config struct {
	// Threshold is the minimum fraction of a line's area a region must
	// cover to claim the line (exclusive).
	Threshold float64
	// Origin tags the upstream detection pipeline in the output document.
	Origin string
	// CleanText enables normalization of line text before merging.
	CleanText bool
	// Clean configures the normalization applied when CleanText is set.
	Clean textutil.CleanOptions
}

// DefaultConfig returns the default assembly configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultOverlapThreshold,
		Origin:    DefaultDetectionOrigin,
		CleanText: false,
		Clean:     textutil.DefaultCleanOptions(),
	}
}

// Assembler reconciles per-page text-line and layout-region detections
// into an ordered, typed document. It is stateless across calls and safe
// for concurrent use.
type Assembler struct {
	cfg Config
}

// New creates an Assembler, filling unset config fields with defaults.
func New(cfg Config) *Assembler {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultOverlapThreshold
	}
	if cfg.Origin == "" {
		cfg.Origin = DefaultDetectionOrigin
	}
	return &Assembler{cfg: cfg}
}

// Origin returns the detection-origin tag applied to assembled documents.
func (a *Assembler) Origin() string { return a.cfg.Origin }

// AssemblePage runs the full matching/accumulation/injection pass for a
// single page and returns its blocks in reading order (ascending top-edge
// y, stable for ties). The result depends only on the page's own inputs.
func (a *Assembler) AssemblePage(pageIndex int, page Page) ([]document.Block, error) {
	for i, r := range page.Regions {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("page %d region %d: %w", pageIndex, i, err)
		}
	}

	acc := NewAccumulator(pageIndex)
	for i, line := range page.Lines {
		box, err := line.BoundingBox()
		if err != nil {
			return nil, fmt.Errorf("page %d line %d: %w", pageIndex, i, err)
		}
		id, label := MatchRegion(box, page.Regions, a.cfg.Threshold)

		text := line.Text
		if a.cfg.CleanText {
			text = textutil.Clean(text, a.cfg.Clean)
		}
		if err := acc.Add(id, label, text, box); err != nil {
			return nil, fmt.Errorf("page %d line %d: %w", pageIndex, i, err)
		}
	}

	// Standalone regions (images, tables) are emitted exactly once each,
	// directly from the region geometry, whether or not any line
	// overlapped them. A region identifier that also accumulated text is
	// conflicting detector output and fails the page.
	blocks := make([]document.Block, 0, acc.Len())
	injected := 0
	for _, r := range page.Regions {
		if !r.Label.Standalone() {
			continue
		}
		if acc.Has(r.ID) {
			return nil, fmt.Errorf("page %d region %s: %w: region received both line merges and direct injection",
				pageIndex, r.ID, ErrBlockConflict)
		}
		injected++
	}
	blocks = append(blocks, acc.Finalize()...)
	for _, r := range page.Regions {
		if r.Label.Standalone() {
			blocks = append(blocks, document.NewBlock(document.TypeForLabel(r.Label), r.Box, "", pageIndex))
		}
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Box.TopLeft.Y < blocks[j].Box.TopLeft.Y
	})

	slog.Debug("Assembled page",
		"page", pageIndex, "lines", len(page.Lines), "regions", len(page.Regions),
		"blocks", len(blocks), "injected", injected)
	return blocks, nil
}

// Assemble processes pages sequentially and concatenates their block
// sequences, preserving page order.
func (a *Assembler) Assemble(pages []Page) (*document.Document, error) {
	return a.AssembleContext(context.Background(), pages)
}

// AssembleContext is Assemble with cancellation between pages.
func (a *Assembler) AssembleContext(ctx context.Context, pages []Page) (*document.Document, error) {
	doc := document.New(a.cfg.Origin)
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blocks, err := a.AssemblePage(i, page)
		if err != nil {
			return nil, err
		}
		doc.Append(blocks...)
	}
	return doc, nil
}
