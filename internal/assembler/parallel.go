package assembler

import (
	"context"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/mosaic/internal/document"
)

// ParallelConfig holds configuration for page-parallel assembly.
type ParallelConfig struct {
	MaxWorkers       int              // Number of parallel workers (0 = runtime.NumCPU())
	ProgressCallback ProgressCallback // Optional progress reporting
}

// DefaultParallelConfig returns sensible defaults for parallel assembly.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		MaxWorkers:       runtime.NumCPU(),
		ProgressCallback: nil,
	}
}

// pageJob represents a single page assembly job.
type pageJob struct {
	index int
	page  Page
}

// pageResult represents the outcome of assembling a single page.
type pageResult struct {
	index  int
	blocks []document.Block
	err    error
}

// AssembleParallel assembles pages on a worker pool. Each page is a pure
// function of its own inputs, so pages may complete in any order; the
// final document concatenates them in original page order and is
// identical to the sequential result. The error for the lowest-index
// failing page is reported, matching sequential behavior.
func (a *Assembler) AssembleParallel(ctx context.Context, pages []Page, config ParallelConfig) (*document.Document, error) {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = runtime.NumCPU()
	}

	// Single page or single worker: sequential path
	if len(pages) <= 1 || config.MaxWorkers == 1 {
		return a.AssembleContext(ctx, pages)
	}

	if config.ProgressCallback != nil {
		config.ProgressCallback.OnStart(len(pages))
		defer config.ProgressCallback.OnComplete()
	}

	jobs := make(chan pageJob, len(pages))
	results := make(chan pageResult, len(pages))

	var wg sync.WaitGroup
	for range config.MaxWorkers {
		wg.Add(1)
		go a.pageWorker(ctx, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for i, page := range pages {
			select {
			case jobs <- pageJob{index: i, page: page}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	blockMap := make(map[int][]document.Block, len(pages))
	errorMap := make(map[int]error, len(pages))
	processed := 0
	for result := range results {
		blockMap[result.index] = result.blocks
		errorMap[result.index] = result.err
		processed++
		if config.ProgressCallback != nil {
			if result.err != nil {
				config.ProgressCallback.OnError(result.index, result.err)
			}
			config.ProgressCallback.OnProgress(processed, len(pages))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := document.New(a.cfg.Origin)
	for i := range pages {
		if err := errorMap[i]; err != nil {
			return nil, err
		}
		doc.Append(blockMap[i]...)
	}
	return doc, nil
}

// pageWorker assembles pages from the jobs channel.
func (a *Assembler) pageWorker(ctx context.Context, jobs <-chan pageJob, results chan<- pageResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			blocks, err := a.AssemblePage(job.index, job.page)
			select {
			case results <- pageResult{index: job.index, blocks: blocks, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
