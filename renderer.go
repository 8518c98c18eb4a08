package pagesnap

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/pagesnap/pagesnap/internal/fileutil"
)

// RasterImage is a lossless capture of one settled render surface.
// Transient: consumed by the assembler and then discardable.
type RasterImage struct {
	PNG []byte
}

// Bounds decodes the image header and returns the pixel dimensions.
func (r RasterImage) Bounds() (width, height int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(r.PNG))
	if err != nil {
		return 0, 0, fmt.Errorf("decoding capture: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// settleScript is evaluated after the load event and resolves once the
// page's asynchronous sub-resources are complete: fonts loaded and every
// image decoded (or failed). Capturing earlier can produce blank or
// partial pages.
const settleScript = `async () => {
	if (document.fonts && document.fonts.ready) {
		await document.fonts.ready;
	}
	const pending = Array.from(document.images)
		.filter(img => !img.complete)
		.map(img => new Promise(resolve => {
			img.addEventListener("load", resolve, { once: true });
			img.addEventListener("error", resolve, { once: true });
		}));
	await Promise.all(pending);
	return true;
}`

// rodSurfaceFactory creates off-screen Chrome pages via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodSurfaceFactory struct {
	browser    *rod.Browser
	timeout    time.Duration
	oversample int
}

func newRodSurfaceFactory(timeout time.Duration, oversample int) *rodSurfaceFactory {
	return &rodSurfaceFactory{timeout: timeout, oversample: oversample}
}

// ensureBrowser lazily launches and connects to the browser.
func (f *rodSurfaceFactory) ensureBrowser() error {
	if f.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	f.browser = rod.New().ControlURL(u)
	if err := f.browser.Connect(); err != nil {
		f.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Acquire creates one headless page sized to the format's 96 DPI pixel
// dimensions, with the device scale factor set to the oversample so the
// capture comes back at print resolution.
func (f *rodSurfaceFactory) Acquire(ctx context.Context, format Format) (renderSurface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             format.WidthPx,
		Height:            format.HeightPx,
		DeviceScaleFactor: float64(f.oversample),
		Mobile:            false,
	}); err != nil {
		_ = page.Close()
		return nil, err
	}

	return &rodSurface{page: page, timeout: f.timeout}, nil
}

// Close releases browser resources.
func (f *rodSurfaceFactory) Close() error {
	if f.browser != nil {
		err := f.browser.Close()
		f.browser = nil
		return err
	}
	return nil
}

// rodSurface wraps one headless page for the duration of one document page.
type rodSurface struct {
	page    *rod.Page
	timeout time.Duration
	cleanup func()
}

// Load writes the markup to a temp file, navigates the page to it, and
// waits for the load event plus the settle signal before returning.
func (s *rodSurface) Load(ctx context.Context, markup string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(markup, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	// Removed at Release: Chrome may still resolve sub-resources relative
	// to the file until the settle signal fires.
	s.cleanup = cleanup

	timeout := s.deadlineTimeout(ctx)
	if timeout <= 0 {
		return context.DeadlineExceeded
	}

	if err := s.page.Timeout(timeout).Navigate("file://" + tmpPath); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := s.page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if _, err := s.page.Timeout(timeout).Eval(settleScript); err != nil {
		return fmt.Errorf("%w: %v", ErrContentSettle, err)
	}
	return nil
}

// Capture screenshots the settled viewport as PNG.
func (s *rodSurface) Capture(ctx context.Context) (RasterImage, error) {
	if err := ctx.Err(); err != nil {
		return RasterImage{}, err
	}

	timeout := s.deadlineTimeout(ctx)
	if timeout <= 0 {
		return RasterImage{}, context.DeadlineExceeded
	}

	data, err := s.page.Timeout(timeout).Screenshot(false, &proto.PageCaptureScreenshot{
		Format:      proto.PageCaptureScreenshotFormatPng,
		FromSurface: true,
	})
	if err != nil {
		return RasterImage{}, fmt.Errorf("%w: %v", ErrRenderCapture, err)
	}
	return RasterImage{PNG: data}, nil
}

// Release closes the page and removes the backing temp file.
func (s *rodSurface) Release() error {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
	return s.page.Close()
}

// deadlineTimeout clamps the configured timeout to the context deadline.
func (s *rodSurface) deadlineTimeout(ctx context.Context) time.Duration {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

// Compile-time interface checks.
var (
	_ surfaceFactory = (*rodSurfaceFactory)(nil)
	_ renderSurface  = (*rodSurface)(nil)
)
