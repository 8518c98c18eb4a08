package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pagesnap/pagesnap/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigPage     = errors.New("invalid page entry in config")
)

// Config describes one document to generate.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Pages    []PageConfig   `yaml:"pages"`
}

// DocumentConfig defines document-level layout options.
type DocumentConfig struct {
	Format      string `yaml:"format"`      // Page format name (default: "a4")
	Orientation string `yaml:"orientation"` // "portrait" or "landscape"
	Output      string `yaml:"output"`      // Output PDF path
}

// PageConfig defines one page. Exactly one of File or Markup must be set.
// A .md/.markdown File (or an explicit Title) makes the page a structured
// snippet; anything else is raw markup.
type PageConfig struct {
	File   string `yaml:"file"`
	Markup string `yaml:"markup"`
	Title  string `yaml:"title"`
}

// LoadConfig reads and parses a YAML document config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := &Config{}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	for i, p := range cfg.Pages {
		if (p.File == "") == (p.Markup == "") {
			return nil, fmt.Errorf("%w: page %d must set exactly one of file or markup", ErrConfigPage, i+1)
		}
	}
	return cfg, nil
}
