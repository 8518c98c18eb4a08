package pagesnap

import (
	"fmt"
	"strings"
	"sync"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// FormatA4 is the only format registered by default.
const FormatA4 = "a4"

// Format describes a physical page format in a fixed orientation.
// Pixel dimensions are the physical size at the 96 DPI CSS reference,
// rounded once at registration, so every consumer sees the same numbers.
type Format struct {
	Name        string
	Orientation string
	WidthMM     float64
	HeightMM    float64
	WidthPx     int
	HeightPx    int
}

// PixelSize returns the capture dimensions at the given oversample factor.
func (f Format) PixelSize(oversample int) (width, height int) {
	return f.WidthPx * oversample, f.HeightPx * oversample
}

// AspectRatio returns the width/height ratio of the physical page.
func (f Format) AspectRatio() float64 {
	return f.WidthMM / f.HeightMM
}

// Landscape returns the same format with width and height swapped.
func (f Format) Landscape() Format {
	return Format{
		Name:        f.Name,
		Orientation: OrientationLandscape,
		WidthMM:     f.HeightMM,
		HeightMM:    f.WidthMM,
		WidthPx:     f.HeightPx,
		HeightPx:    f.WidthPx,
	}
}

// formatRegistry maps format names to their portrait definitions.
// Additional formats can be registered at program init; the registry is
// never mutated mid-generation.
var (
	formatMu sync.RWMutex
	formats  = map[string]Format{}
)

func init() {
	// A4: 210x297 mm, 794x1123 px at the 96 DPI reference.
	RegisterFormat(Format{
		Name:        FormatA4,
		Orientation: OrientationPortrait,
		WidthMM:     210,
		HeightMM:    297,
		WidthPx:     794,
		HeightPx:    1123,
	})
}

// RegisterFormat adds a portrait format definition to the registry.
// Registering an existing name replaces it.
func RegisterFormat(f Format) {
	formatMu.Lock()
	defer formatMu.Unlock()
	formats[strings.ToLower(f.Name)] = f
}

// ResolveFormat looks up a format by name and applies the orientation.
// Empty name defaults to A4; empty orientation defaults to portrait.
func ResolveFormat(name, orientation string) (Format, error) {
	if name == "" {
		name = FormatA4
	}
	formatMu.RLock()
	f, ok := formats[strings.ToLower(name)]
	formatMu.RUnlock()
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
	}

	switch strings.ToLower(orientation) {
	case "", OrientationPortrait:
		return f, nil
	case OrientationLandscape:
		return f.Landscape(), nil
	default:
		return Format{}, fmt.Errorf("%w: %q", ErrInvalidOrientation, orientation)
	}
}
