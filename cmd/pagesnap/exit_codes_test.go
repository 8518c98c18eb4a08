package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pagesnap/pagesnap"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "browser connect", err: pagesnap.ErrBrowserConnect, want: ExitBrowser},
		{name: "wrapped capture failure", err: fmt.Errorf("rendering page 2: %w", pagesnap.ErrRenderCapture), want: ExitBrowser},
		{name: "settle failure", err: pagesnap.ErrContentSettle, want: ExitBrowser},
		{name: "fragment read", err: fmt.Errorf("%w: no such file", ErrReadFragment), want: ExitIO},
		{name: "config missing", err: ErrConfigNotFound, want: ExitIO},
		{name: "no inputs", err: ErrNoInputs, want: ExitUsage},
		{name: "bad extension", err: ErrUnknownExtension, want: ExitUsage},
		{name: "config parse", err: ErrConfigParse, want: ExitUsage},
		{name: "empty pages", err: pagesnap.ErrEmptyPages, want: ExitUsage},
		{name: "bad orientation", err: pagesnap.ErrInvalidOrientation, want: ExitUsage},
		{name: "unexpected error", err: errors.New("boom"), want: ExitGeneral},
		{name: "assembly failure", err: pagesnap.ErrPageAssembly, want: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
