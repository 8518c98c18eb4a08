//go:build integration

package pagesnap

// Integration tests exercise the real rod backend against a headless
// Chrome instance. Run with:
//
//	go test -tags integration ./...
//
// Requires Chrome/Chromium; rod downloads a managed Chromium on first run.

import (
	"bytes"
	"context"
	"testing"
	"time"
)

const integrationTimeout = 60 * time.Second

func TestGenerate_RealBrowser_SinglePage(t *testing.T) {
	gen := New(WithTimeout(integrationTimeout))
	defer gen.Close()

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	result, err := gen.Generate(ctx, Input{
		Pages: []PageContent{
			RawMarkup("<html><body><h1>Integration</h1></body></html>"),
		},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer result.Ref.Release()

	if !bytes.HasPrefix(result.Blob, []byte("%PDF")) {
		t.Error("blob is not a PDF")
	}
}

func TestGenerate_RealBrowser_CaptureSize(t *testing.T) {
	gen := New(WithTimeout(integrationTimeout))
	defer gen.Close()

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	f, err := ResolveFormat("a4", "portrait")
	if err != nil {
		t.Fatalf("ResolveFormat: %v", err)
	}

	img, err := gen.renderPage(ctx, RawMarkup("<html><body>size probe</body></html>"), f)
	if err != nil {
		t.Fatalf("renderPage: %v", err)
	}

	w, h, err := img.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if w != 1588 || h != 2246 {
		t.Errorf("capture = %dx%d, want 1588x2246", w, h)
	}
}

func TestGenerate_RealBrowser_MultiPageLandscape(t *testing.T) {
	gen := New(WithTimeout(integrationTimeout))
	defer gen.Close()

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	result, err := gen.Generate(ctx, Input{
		Pages: []PageContent{
			RawMarkup("<html><body><h1>Cover</h1></body></html>"),
			MarkdownRecord("Data", "| a | b |\n|---|---|\n| 1 | 2 |"),
			MarkdownRecord("Summary", "All **done**."),
		},
		Orientation: OrientationLandscape,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer result.Ref.Release()

	if len(result.Blob) == 0 {
		t.Error("blob is empty")
	}
}
