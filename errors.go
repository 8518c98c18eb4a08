package pagesnap

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrEmptyPages   = errors.New("page list cannot be empty")
	ErrEmptyContent = errors.New("page content cannot be empty")

	// Format validation errors.
	ErrInvalidFormat      = errors.New("unknown page format")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidOversample  = errors.New("invalid oversample factor")

	// Rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrSurfaceCreate  = errors.New("failed to create render surface")
	ErrPageLoad       = errors.New("failed to load page content")
	ErrContentSettle  = errors.New("page content did not settle")
	ErrRenderCapture  = errors.New("failed to capture render surface")

	// Assembly errors.
	ErrPageAssembly = errors.New("captured image incompatible with page format")
	ErrNoPages      = errors.New("document has no pages")

	// Packaging errors.
	ErrFinalize       = errors.New("document serialization failed")
	ErrDoubleFinalize = errors.New("document already finalized")

	// ErrSurfaceRelease indicates a surface teardown itself failed. It is
	// reported through the warn logger and joined into the returned error,
	// never swallowed.
	ErrSurfaceRelease = errors.New("failed to release render surface")
)
