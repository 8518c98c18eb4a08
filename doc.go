// Package pagesnap converts ordered markup fragments into a single
// paginated PDF, one full-bleed raster page per fragment.
//
// # Quick Start
//
// Create a generator, generate a document, and close when done:
//
//	gen := pagesnap.New()
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, pagesnap.Input{
//	    Pages: []pagesnap.PageContent{
//	        pagesnap.RawMarkup("<h1>Cover</h1>"),
//	        pagesnap.MarkdownRecord("Summary", "Quarterly **results**."),
//	    },
//	    Orientation: "landscape",
//	    Filename:    "report.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer result.Ref.Release()
//
// The result carries the serialized document (result.Blob) and a
// file-backed reference (result.Ref) to the same bytes; the caller owns
// the reference and releases it when done.
//
// # Generation Pipeline
//
// Each page goes through the same strictly sequential cycle:
//
//  1. Resolve the page content (raw markup, or markdown record via Goldmark)
//  2. Load it into a transient off-screen Chrome page (go-rod)
//  3. Wait for the content-ready signal (fonts loaded, images decoded)
//  4. Capture the viewport as PNG at the oversample factor (default 2x)
//  5. Place the capture full-bleed onto the next document page (fpdf)
//
// At most one render surface exists at a time, and it is released before
// the next page begins, whether or not the page succeeded. Generation is
// all-or-nothing: any page error aborts the run with no partial result.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen := pagesnap.New(
//	    pagesnap.WithTimeout(2 * time.Minute),
//	    pagesnap.WithOversample(3),
//	)
//
// # Parallel Processing
//
// Pages within one document are never parallelized. For batches of
// independent documents, use GeneratorPool to manage browser instances:
//
//	pool := pagesnap.NewGeneratorPool(4)
//	defer pool.Close()
//
//	gen := pool.Acquire()
//	defer pool.Release(gen)
//	result, err := gen.Generate(ctx, input)
//
// # Browser Requirements
//
// Rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; in containers
// and CI the sandbox is disabled automatically.
//
// # Limitations
//
// Every page is an embedded raster image: the output has no extractable
// text layer. This is an explicit property of the pipeline, not a bug.
package pagesnap
