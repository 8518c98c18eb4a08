package pagesnap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodePNG renders a flat-color PNG of the given pixel size for tests.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

// a4PortraitPNG returns a capture-shaped PNG for A4 portrait at the
// given oversample.
func a4PortraitPNG(t *testing.T, oversample int) []byte {
	t.Helper()
	f, err := ResolveFormat("a4", "portrait")
	if err != nil {
		t.Fatalf("ResolveFormat: %v", err)
	}
	w, h := f.PixelSize(oversample)
	return encodePNG(t, w, h)
}

func TestFpdfAssembler_AppendPage_CountMatchesCalls(t *testing.T) {
	f, _ := ResolveFormat("a4", "portrait")
	asm := newFpdfAssembler(f)

	img := RasterImage{PNG: a4PortraitPNG(t, 1)}
	for i := 1; i <= 3; i++ {
		if err := asm.AppendPage(img); err != nil {
			t.Fatalf("AppendPage %d: %v", i, err)
		}
		if got := asm.PageCount(); got != i {
			t.Fatalf("PageCount after %d appends = %d", i, got)
		}
	}
}

func TestFpdfAssembler_Output(t *testing.T) {
	f, _ := ResolveFormat("a4", "landscape")
	asm := newFpdfAssembler(f)

	w, h := f.PixelSize(2)
	img := RasterImage{PNG: encodePNG(t, w, h)}
	for i := 0; i < 2; i++ {
		if err := asm.AppendPage(img); err != nil {
			t.Fatalf("AppendPage: %v", err)
		}
	}

	blob, err := asm.Output()
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("Output returned empty blob")
	}
	if !bytes.HasPrefix(blob, []byte("%PDF")) {
		t.Errorf("blob does not start with PDF header: %q", blob[:8])
	}
}

func TestFpdfAssembler_Output_ZeroPages(t *testing.T) {
	f, _ := ResolveFormat("a4", "portrait")
	asm := newFpdfAssembler(f)

	if _, err := asm.Output(); !errors.Is(err, ErrNoPages) {
		t.Fatalf("Output on empty document = %v, want ErrNoPages", err)
	}
}

func TestFpdfAssembler_Output_DoubleFinalize(t *testing.T) {
	f, _ := ResolveFormat("a4", "portrait")
	asm := newFpdfAssembler(f)

	if err := asm.AppendPage(RasterImage{PNG: a4PortraitPNG(t, 1)}); err != nil {
		t.Fatalf("AppendPage: %v", err)
	}
	if _, err := asm.Output(); err != nil {
		t.Fatalf("first Output: %v", err)
	}
	if _, err := asm.Output(); !errors.Is(err, ErrDoubleFinalize) {
		t.Fatalf("second Output = %v, want ErrDoubleFinalize", err)
	}
}

func TestFpdfAssembler_AppendPage_AspectMismatch(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{name: "square image on portrait page", width: 500, height: 500},
		{name: "landscape capture on portrait page", width: 1123, height: 794},
		{name: "slightly off ratio", width: 794, height: 1200},
	}

	f, _ := ResolveFormat("a4", "portrait")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm := newFpdfAssembler(f)
			err := asm.AppendPage(RasterImage{PNG: encodePNG(t, tt.width, tt.height)})
			if !errors.Is(err, ErrPageAssembly) {
				t.Fatalf("AppendPage(%dx%d) = %v, want ErrPageAssembly", tt.width, tt.height, err)
			}
			if asm.PageCount() != 0 {
				t.Errorf("rejected image still counted: PageCount = %d", asm.PageCount())
			}
		})
	}
}

func TestFpdfAssembler_AppendPage_CorruptImage(t *testing.T) {
	f, _ := ResolveFormat("a4", "portrait")
	asm := newFpdfAssembler(f)

	err := asm.AppendPage(RasterImage{PNG: []byte("not a png")})
	if !errors.Is(err, ErrPageAssembly) {
		t.Fatalf("AppendPage(corrupt) = %v, want ErrPageAssembly", err)
	}
}

func TestRasterImage_Bounds(t *testing.T) {
	img := RasterImage{PNG: encodePNG(t, 1588, 2246)}

	w, h, err := img.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if w != 1588 || h != 2246 {
		t.Errorf("Bounds = %dx%d, want 1588x2246", w, h)
	}
}
