package pagesnap

import (
	"bytes"
	"fmt"
	"math"

	"codeberg.org/go-pdf/fpdf"
)

// aspectTolerance is the allowed deviation between a captured image's
// aspect ratio and the page format's. The renderer guarantees an exact
// oversample multiple, so a mismatch here means a broken capture.
const aspectTolerance = 1e-3

// documentAssembler accumulates captured pages into a single document.
// Append-only during generation; serialized exactly once.
type documentAssembler interface {
	AppendPage(img RasterImage) error
	PageCount() int
	Output() ([]byte, error)
}

// fpdfAssembler places full-bleed raster pages onto fixed-size fpdf pages.
type fpdfAssembler struct {
	doc       *fpdf.Fpdf
	format    Format
	appended  int
	finalized bool
}

// newFpdfAssembler begins an empty document in the given format. The
// underlying document starts with one blank page ready to be filled by
// the first AppendPage call.
func newFpdfAssembler(format Format) *fpdfAssembler {
	orient := "P"
	if format.Orientation == OrientationLandscape {
		orient = "L"
	}

	doc := fpdf.New(orient, "mm", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	return &fpdfAssembler{doc: doc, format: format}
}

// AppendPage places img to exactly cover the next page. The first call
// fills the already-present first page; subsequent calls insert a new
// page of the same format first. Margins are not added at this layer.
func (a *fpdfAssembler) AppendPage(img RasterImage) error {
	if err := a.checkAspect(img); err != nil {
		return err
	}

	if a.appended > 0 {
		a.doc.AddPage()
	}

	name := fmt.Sprintf("page-%d", a.appended+1)
	a.doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img.PNG))
	a.doc.ImageOptions(name, 0, 0, a.format.WidthMM, a.format.HeightMM, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	if a.doc.Err() {
		return fmt.Errorf("%w: %v", ErrPageAssembly, a.doc.Error())
	}

	a.appended++
	return nil
}

// PageCount returns the number of appended pages.
func (a *fpdfAssembler) PageCount() int {
	return a.appended
}

// Output serializes the document. Valid exactly once; a zero-page
// document is rejected rather than producing an empty file.
func (a *fpdfAssembler) Output() ([]byte, error) {
	if a.finalized {
		return nil, ErrDoubleFinalize
	}
	if a.appended == 0 {
		return nil, ErrNoPages
	}
	a.finalized = true

	var buf bytes.Buffer
	if err := a.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFinalize, err)
	}
	return buf.Bytes(), nil
}

// checkAspect validates that the capture's pixel aspect ratio matches the
// page format. Unreachable when the renderer honors its contract, but
// validated rather than assumed.
func (a *fpdfAssembler) checkAspect(img RasterImage) error {
	w, h, err := img.Bounds()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageAssembly, err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: empty capture %dx%d", ErrPageAssembly, w, h)
	}

	got := float64(w) / float64(h)
	want := a.format.AspectRatio()
	if math.Abs(got-want) > aspectTolerance {
		return fmt.Errorf("%w: capture %dx%d (ratio %.4f) vs page %.0fx%.0fmm (ratio %.4f)",
			ErrPageAssembly, w, h, got, a.format.WidthMM, a.format.HeightMM, want)
	}
	return nil
}

// Compile-time interface check.
var _ documentAssembler = (*fpdfAssembler)(nil)
