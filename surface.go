package pagesnap

import (
	"context"
	"errors"
	"fmt"
)

// renderSurface is one page's transient off-screen rendering context.
// Exactly one surface exists at a time during a generation run; it is
// released unconditionally before the next page begins.
type renderSurface interface {
	// Load materializes the markup in the surface and blocks until the
	// content has settled (fonts loaded, images decoded).
	Load(ctx context.Context, markup string) error

	// Capture encodes the settled surface as a lossless raster image.
	Capture(ctx context.Context) (RasterImage, error)

	// Release destroys the surface. Called exactly once per surface.
	Release() error
}

// surfaceFactory creates render surfaces sized to a page format.
type surfaceFactory interface {
	Acquire(ctx context.Context, f Format) (renderSurface, error)
	Close() error
}

// withSurface runs fn against a freshly acquired surface and guarantees
// exactly-once release on every exit path. A teardown failure is joined
// into the returned error and reported through warnf so it is never
// silently swallowed.
func withSurface(ctx context.Context, factory surfaceFactory, f Format, warnf func(string, ...any), fn func(renderSurface) error) error {
	surface, err := factory.Acquire(ctx, f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceCreate, err)
	}

	fnErr := fn(surface)

	if relErr := surface.Release(); relErr != nil {
		relErr = fmt.Errorf("%w: %v", ErrSurfaceRelease, relErr)
		warnf("pagesnap: %v", relErr)
		return errors.Join(fnErr, relErr)
	}
	return fnErr
}
