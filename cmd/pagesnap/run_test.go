package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFragment(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fragment: %v", err)
	}
	return path
}

func TestBuildInput_FromFiles(t *testing.T) {
	dir := t.TempDir()
	cover := writeFragment(t, dir, "cover.html", "<h1>Cover</h1>")
	data := writeFragment(t, dir, "q3-data.md", "Revenue **up**.")

	flags := &cliFlags{format: "a4", orientation: "landscape"}
	input, err := buildInput(flags, []string{cover, data})
	if err != nil {
		t.Fatalf("buildInput: %v", err)
	}

	if len(input.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(input.Pages))
	}
	if input.Orientation != "landscape" {
		t.Errorf("orientation = %q", input.Orientation)
	}
	if input.Filename != "cover.pdf" {
		t.Errorf("default output = %q, want cover.pdf", input.Filename)
	}
}

func TestBuildInput_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	page := writeFragment(t, dir, "page.html", "<p/>")

	flags := &cliFlags{output: "final.pdf"}
	input, err := buildInput(flags, []string{page})
	if err != nil {
		t.Fatalf("buildInput: %v", err)
	}
	if input.Filename != "final.pdf" {
		t.Errorf("output = %q, want final.pdf", input.Filename)
	}
}

func TestBuildInput_NoInputs(t *testing.T) {
	if _, err := buildInput(&cliFlags{}, nil); !errors.Is(err, ErrNoInputs) {
		t.Fatalf("buildInput = %v, want ErrNoInputs", err)
	}
}

func TestBuildInput_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	bad := writeFragment(t, dir, "page.txt", "text")

	if _, err := buildInput(&cliFlags{}, []string{bad}); !errors.Is(err, ErrUnknownExtension) {
		t.Fatalf("buildInput = %v, want ErrUnknownExtension", err)
	}
}

func TestBuildInput_MissingFile(t *testing.T) {
	_, err := buildInput(&cliFlags{}, []string{filepath.Join(t.TempDir(), "missing.html")})
	if !errors.Is(err, ErrReadFragment) {
		t.Fatalf("buildInput = %v, want ErrReadFragment", err)
	}
}

func TestInputFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "cover.html", "<h1>Cover</h1>")
	writeFragment(t, dir, "notes.md", "some *notes*")

	cfgPath := writeConfig(t, `
document:
  orientation: landscape
  output: out.pdf
pages:
  - file: `+filepath.Join(dir, "cover.html")+`
  - file: `+filepath.Join(dir, "notes.md")+`
    title: Notes
  - markup: "<p>inline</p>"
`)

	flags := &cliFlags{config: cfgPath}
	input, err := inputFromConfig(flags)
	if err != nil {
		t.Fatalf("inputFromConfig: %v", err)
	}

	if len(input.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(input.Pages))
	}
	if input.Filename != "out.pdf" {
		t.Errorf("output = %q, want out.pdf", input.Filename)
	}
	if input.Orientation != "landscape" {
		t.Errorf("orientation = %q", input.Orientation)
	}
}

func TestInputFromConfig_OutputFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	page := writeFragment(t, dir, "page.html", "<p/>")
	cfgPath := writeConfig(t, "document:\n  output: config.pdf\npages:\n  - file: "+page+"\n")

	flags := &cliFlags{config: cfgPath, output: "flag.pdf"}
	input, err := inputFromConfig(flags)
	if err != nil {
		t.Fatalf("inputFromConfig: %v", err)
	}
	if input.Filename != "flag.pdf" {
		t.Errorf("output = %q, want flag.pdf", input.Filename)
	}
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"q3-revenue_summary.md", "q3 revenue summary"},
		{"/abs/path/cover.md", "cover"},
		{"notes.markdown", "notes"},
	}

	for _, tt := range tests {
		if got := titleFromPath(tt.in); got != tt.want {
			t.Errorf("titleFromPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPdfName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cover.html", "cover.pdf"},
		{"/some/dir/data.md", "data.pdf"},
	}

	for _, tt := range tests {
		if got := pdfName(tt.in); got != tt.want {
			t.Errorf("pdfName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
