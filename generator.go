package pagesnap

import (
	"context"
	"fmt"
	"os"

	"github.com/pagesnap/pagesnap/internal/pipeline"
)

// Generator orchestrates the page-by-page render-and-assembly pipeline.
// Create with New(), generate with Generate(), and Close() when done.
//
// A Generator processes one document at a time: pages are rendered
// strictly sequentially, with at most one live render surface, and the
// document accumulator is touched only from the calling goroutine.
type Generator struct {
	cfg          generatorConfig
	markdown     pipeline.HTMLConverter
	surfaces     surfaceFactory
	newAssembler func(Format) documentAssembler
}

// New creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithOversample).
func New(opts ...Option) *Generator {
	g := &Generator{
		cfg: generatorConfig{
			timeout:    defaultTimeout,
			oversample: DefaultOversample,
			warnf: func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			},
		},
		markdown: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(g)
	}

	// Create rendering backend if not injected (e.g., by tests)
	if g.surfaces == nil {
		g.surfaces = newRodSurfaceFactory(g.cfg.timeout, g.cfg.oversample)
	}
	if g.newAssembler == nil {
		g.newAssembler = func(f Format) documentAssembler { return newFpdfAssembler(f) }
	}

	return g
}

// Generate runs the full pipeline: each page content is rendered into a
// transient surface, captured, and appended to the document in input
// order; the finished document is serialized once and returned together
// with a file-backed reference.
//
// Generation is all-or-nothing: any page error aborts the run with no
// partial result, after releasing the in-flight surface.
func (g *Generator) Generate(ctx context.Context, input Input) (*GenerationResult, error) {
	if g.cfg.oversample < MinOversample || g.cfg.oversample > MaxOversample {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)",
			ErrInvalidOversample, g.cfg.oversample, MinOversample, MaxOversample)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	format, err := ResolveFormat(input.Format, input.Orientation)
	if err != nil {
		return nil, err
	}

	doc := g.newAssembler(format)

	for i, content := range input.Pages {
		// Suspension point: cancellation is honored between pages, never
		// mid-surface.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := g.renderPage(ctx, content, format)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}

		if err := doc.AppendPage(img); err != nil {
			return nil, fmt.Errorf("assembling page %d: %w", i+1, err)
		}
	}

	blob, err := doc.Output()
	if err != nil {
		return nil, fmt.Errorf("packaging document: %w", err)
	}

	return packageBlob(blob, input.Filename, g.cfg.warnf)
}

// GenerateFromSource pulls the ordered page contents from src and runs
// Generate with them. Layout fields of input (Format, Orientation,
// Filename) are used as-is; input.Pages is replaced.
func (g *Generator) GenerateFromSource(ctx context.Context, src ContentSource, input Input) (*GenerationResult, error) {
	pages, err := src.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching page contents: %w", err)
	}
	input.Pages = pages
	return g.Generate(ctx, input)
}

// renderPage materializes one page content inside a scoped surface and
// captures it. The surface is released before this function returns,
// whatever the outcome.
func (g *Generator) renderPage(ctx context.Context, content PageContent, format Format) (RasterImage, error) {
	markup, err := content.resolve(ctx, g.markdown)
	if err != nil {
		return RasterImage{}, err
	}

	var img RasterImage
	err = withSurface(ctx, g.surfaces, format, g.cfg.warnf, func(s renderSurface) error {
		if err := s.Load(ctx, markup); err != nil {
			return err
		}
		captured, err := s.Capture(ctx)
		if err != nil {
			return err
		}
		img = captured
		return nil
	})
	if err != nil {
		return RasterImage{}, err
	}
	return img, nil
}

// Close releases rendering resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.surfaces != nil {
		return g.surfaces.Close()
	}
	return nil
}
