// Package assets holds the stylesheets embedded into the binary.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed styles/*
var styles embed.FS

// DefaultStyleName is the stylesheet applied to structured snippet pages.
const DefaultStyleName = "page"

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidStyleName = errors.New("invalid style name")
)

// LoadStyle loads an embedded CSS stylesheet by name (without extension).
func LoadStyle(name string) (string, error) {
	if err := validateStyleName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// DefaultStyle returns the built-in page stylesheet.
// Panics if the embedded asset is missing (broken build, not a runtime condition).
func DefaultStyle() string {
	css, err := LoadStyle(DefaultStyleName)
	if err != nil {
		panic("assets: embedded default style missing: " + err.Error())
	}
	return css
}

// validateStyleName rejects names that could escape the styles directory.
func validateStyleName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidStyleName, name)
	}
	return nil
}
