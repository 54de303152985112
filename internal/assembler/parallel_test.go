package assembler

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/MeKo-Tech/mosaic/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyPages(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{
			Width:  200,
			Height: 300,
			Lines: []Line{
				wordLine(fmt.Sprintf("title %d", i), 5, 2, 95, 10),
				wordLine(fmt.Sprintf("body %d", i), 5, 30, 95, 40),
			},
			Regions: []layout.Region{
				region(fmt.Sprintf("t%d", i), layout.LabelTitle, 0, 0, 100, 20),
				region(fmt.Sprintf("b%d", i), layout.LabelText, 0, 25, 100, 45),
				region(fmt.Sprintf("img%d", i), layout.LabelImage, 0, 100, 200, 200),
			},
		}
	}
	return pages
}

func TestAssembleParallelMatchesSequential(t *testing.T) {
	pages := manyPages(16)
	a := New(DefaultConfig())

	seq, err := a.Assemble(pages)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 8} {
		par, err := a.AssembleParallel(context.Background(), pages, ParallelConfig{MaxWorkers: workers})
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

func TestAssembleParallelPreservesPageOrder(t *testing.T) {
	pages := manyPages(10)
	doc, err := New(DefaultConfig()).AssembleParallel(context.Background(), pages, ParallelConfig{MaxWorkers: 4})
	require.NoError(t, err)

	lastPage := 0
	for _, b := range doc.Content {
		assert.GreaterOrEqual(t, b.PageRange.Start, lastPage)
		lastPage = b.PageRange.Start
	}
	assert.Equal(t, 10, doc.PageCount())
}

func TestAssembleParallelSinglePageFallsBackSequential(t *testing.T) {
	pages := manyPages(1)
	doc, err := New(DefaultConfig()).AssembleParallel(context.Background(), pages, ParallelConfig{MaxWorkers: 8})
	require.NoError(t, err)
	assert.Len(t, doc.Content, 3)
}

func TestAssembleParallelReportsLowestFailingPage(t *testing.T) {
	pages := manyPages(8)
	// Two bad pages; the error must name the earlier one, as the
	// sequential path would.
	pages[3].Lines = append(pages[3].Lines, Line{Text: "no words"})
	pages[6].Lines = append(pages[6].Lines, Line{Text: "no words"})

	_, err := New(DefaultConfig()).AssembleParallel(context.Background(), pages, ParallelConfig{MaxWorkers: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyLineGeometry)
	assert.Contains(t, err.Error(), "page 3")
}

func TestAssembleParallelCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultConfig()).AssembleParallel(ctx, manyPages(50), ParallelConfig{MaxWorkers: 4})
	assert.ErrorIs(t, err, context.Canceled)
}

// countingProgress records callback invocations for assertions.
type countingProgress struct {
	mu       sync.Mutex
	started  int
	progress int
	complete int
	errors   int
}

func (c *countingProgress) OnStart(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = total
}

func (c *countingProgress) OnProgress(current, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress++
}

func (c *countingProgress) OnComplete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.complete++
}

func (c *countingProgress) OnError(page int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors++
}

func TestAssembleParallelProgressCallback(t *testing.T) {
	pages := manyPages(6)
	cb := &countingProgress{}

	_, err := New(DefaultConfig()).AssembleParallel(context.Background(), pages, ParallelConfig{
		MaxWorkers:       3,
		ProgressCallback: cb,
	})
	require.NoError(t, err)

	cb.mu.Lock()
	defer cb.mu.Unlock()
	assert.Equal(t, 6, cb.started)
	assert.Equal(t, 6, cb.progress)
	assert.Equal(t, 1, cb.complete)
	assert.Zero(t, cb.errors)
}
