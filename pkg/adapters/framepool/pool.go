// Package framepool encodes composited frames to PNG with a bounded worker pool.
package framepool

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sort"
	"sync"

	"github.com/user/stickerframes/pkg/ports"
)

// Pool encodes frames in parallel while preserving their order.
type Pool struct {
	renderer   ports.Renderer
	numWorkers int
}

// New creates a new Pool. numWorkers <= 0 uses runtime.NumCPU().
func New(renderer ports.Renderer, numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{
		renderer:   renderer,
		numWorkers: numWorkers,
	}
}

// Workers returns the number of workers the pool runs.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// indexedPNG holds an encoded frame with its original index for sorting.
type indexedPNG struct {
	index int
	data  []byte
}

// EncodeAll encodes every image as PNG. The result has the same order as images.
// The first encoding error stops the remaining work.
func (p *Pool) EncodeAll(ctx context.Context, images []image.Image) ([][]byte, error) {
	numFrames := len(images)
	if numFrames == 0 {
		return [][]byte{}, nil
	}

	workers := p.numWorkers
	if workers > numFrames {
		workers = numFrames
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, numFrames)
	results := make(chan indexedPNG, numFrames)
	errChan := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go p.worker(ctx, cancel, &wg, images, jobs, results, errChan)
	}

	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	encoded := make([]indexedPNG, 0, numFrames)
	for result := range results {
		encoded = append(encoded, result)
	}

	if err := <-errChan; err != nil {
		return nil, err
	}
	if len(encoded) != numFrames {
		// Only reachable when the parent context was cancelled.
		return nil, ctx.Err()
	}

	sort.Slice(encoded, func(i, j int) bool {
		return encoded[i].index < encoded[j].index
	})

	out := make([][]byte, numFrames)
	for i, e := range encoded {
		out[i] = e.data
	}
	return out, nil
}

func (p *Pool) worker(
	ctx context.Context,
	cancel context.CancelFunc,
	wg *sync.WaitGroup,
	images []image.Image,
	jobs <-chan int,
	results chan<- indexedPNG,
	errChan chan<- error,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		data, err := p.renderer.EncodePNG(images[idx])
		if err != nil {
			select {
			case errChan <- fmt.Errorf("encode frame %d: %w", idx, err):
			default:
			}
			cancel()
			return
		}

		results <- indexedPNG{index: idx, data: data}
	}
}
