package pagesnap

import (
	"fmt"
	"time"
)

// Oversample bounds. The capture resolution is the 96 DPI reference size
// multiplied by the oversample factor; 2x is the print-quality default.
const (
	MinOversample     = 1
	MaxOversample     = 4
	DefaultOversample = 2
)

// defaultTimeout bounds one page's load-settle-capture cycle.
const defaultTimeout = 30 * time.Second

// Input contains generation parameters for one document.
type Input struct {
	Pages       []PageContent // Ordered page contents (required, one per page)
	Format      string        // Page format name (default: "a4")
	Orientation string        // "portrait" or "landscape" (default: portrait)
	Filename    string        // Save target for the finalized document (optional)
}

// validate checks that the input describes a generatable document.
func (in Input) validate() error {
	if len(in.Pages) == 0 {
		return ErrEmptyPages
	}
	for i, p := range in.Pages {
		if p.IsZero() {
			return fmt.Errorf("%w: page %d", ErrEmptyContent, i+1)
		}
	}
	if _, err := ResolveFormat(in.Format, in.Orientation); err != nil {
		return err
	}
	return nil
}

// GenerationResult is the immutable outcome of a fully successful run:
// the serialized document and a file-backed reference to the same bytes.
// The caller owns the reference and must Release it when done.
type GenerationResult struct {
	Blob []byte
	Ref  *BlobRef
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout    time.Duration
	oversample int
	warnf      func(format string, args ...any)
}

// WithTimeout sets the per-page render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pagesnap: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithOversample sets the capture oversample factor.
// Values outside [MinOversample, MaxOversample] are rejected at Generate time.
func WithOversample(n int) Option {
	return func(g *Generator) {
		g.cfg.oversample = n
	}
}

// WithWarnLogger sets the sink for non-fatal warnings (surface teardown
// failures). Defaults to a stderr printf.
func WithWarnLogger(f func(format string, args ...any)) Option {
	return func(g *Generator) {
		if f != nil {
			g.cfg.warnf = f
		}
	}
}
