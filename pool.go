package pagesnap

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// GeneratorPool manages a pool of Generator instances for batch runs.
// Each generator owns its own browser instance, so independent documents
// can be generated in parallel; pages within one document stay sequential.
// Generators are created lazily on first acquire to avoid startup delay.
type GeneratorPool struct {
	size       int
	opts       []Option
	generators []*Generator
	sem        chan *Generator
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewGeneratorPool creates a pool with capacity for n Generator instances,
// each configured with opts. Generators are created lazily when acquired.
func NewGeneratorPool(n int, opts ...Option) *GeneratorPool {
	if n < 1 {
		n = 1
	}

	return &GeneratorPool{
		size:       n,
		opts:       opts,
		generators: make([]*Generator, 0, n),
		sem:        make(chan *Generator, n),
	}
}

// Acquire gets a generator from the pool, creating one if needed.
// Blocks if all generators are in use.
func (p *GeneratorPool) Acquire() *Generator {
	// Try to get an existing generator (non-blocking)
	select {
	case gen := <-p.sem:
		return gen
	default:
	}

	// Check if we can create a new generator
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new generator outside the lock
		gen := New(p.opts...)

		p.mu.Lock()
		p.generators = append(p.generators, gen)
		p.mu.Unlock()

		return gen
	}
	p.mu.Unlock()

	// All generators created, wait for one to be released
	return <-p.sem
}

// Release returns a generator to the pool.
// The lock is released before sending to avoid deadlock when channel is full.
func (p *GeneratorPool) Release(gen *Generator) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- gen
}

// Close releases all browser resources.
// Returns an aggregated error if multiple generators fail to close.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	generators := p.generators
	p.mu.Unlock()

	var errs []error
	for _, gen := range generators {
		if err := gen.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *GeneratorPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size to use.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
