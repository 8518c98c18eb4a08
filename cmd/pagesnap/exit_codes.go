package main

import (
	"errors"
	"os"

	"github.com/pagesnap/pagesnap"
)

// Exit codes for the pagesnap CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document(s) generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pagesnap.ErrBrowserConnect) ||
		errors.Is(err, pagesnap.ErrSurfaceCreate) ||
		errors.Is(err, pagesnap.ErrPageLoad) ||
		errors.Is(err, pagesnap.ErrContentSettle) ||
		errors.Is(err, pagesnap.ErrRenderCapture) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadFragment) ||
		errors.Is(err, ErrConfigNotFound) {
		return ExitIO
	}

	// Usage/validation errors (exit 2)
	if errors.Is(err, ErrNoInputs) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrConfigPage) ||
		errors.Is(err, ErrUnknownExtension) ||
		errors.Is(err, pagesnap.ErrEmptyPages) ||
		errors.Is(err, pagesnap.ErrEmptyContent) ||
		errors.Is(err, pagesnap.ErrInvalidFormat) ||
		errors.Is(err, pagesnap.ErrInvalidOrientation) ||
		errors.Is(err, pagesnap.ErrInvalidOversample) {
		return ExitUsage
	}

	return ExitGeneral
}
