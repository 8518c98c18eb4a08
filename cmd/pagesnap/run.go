package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pagesnap/pagesnap"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInputs         = errors.New("no input fragments: pass files or --config")
	ErrReadFragment     = errors.New("failed to read fragment file")
	ErrUnknownExtension = errors.New("fragment must have .html, .htm, .md, or .markdown extension")
)

// run builds the document input from flags/config and generates it.
// out receives progress messages.
func run(ctx context.Context, flags *cliFlags, args []string, out io.Writer) error {
	if flags.split {
		return runSplit(ctx, flags, args, out)
	}

	input, err := buildInput(flags, args)
	if err != nil {
		return err
	}

	gen := pagesnap.New(generatorOptions(flags)...)
	defer gen.Close()

	result, err := gen.Generate(ctx, input)
	if err != nil {
		return err
	}
	defer result.Ref.Release()

	fmt.Fprintf(out, "Created %s (%d bytes)\n", input.Filename, len(result.Blob))
	return nil
}

// runSplit generates one single-page PDF per input file, in parallel
// across a generator pool. Page order inside each document is trivially
// preserved; file-level parallelism is safe because every document is
// independent.
func runSplit(ctx context.Context, flags *cliFlags, args []string, out io.Writer) error {
	if len(args) == 0 {
		return ErrNoInputs
	}

	// Read everything up front so a bad path fails before any browser work.
	pages := make([]pagesnap.PageContent, len(args))
	for i, path := range args {
		content, err := fragmentFromFile(path)
		if err != nil {
			return err
		}
		pages[i] = content
	}

	pool := pagesnap.NewGeneratorPool(pagesnap.ResolvePoolSize(flags.workers), generatorOptions(flags)...)
	defer pool.Close()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i, path := range args {
		wg.Add(1)
		go func(page pagesnap.PageContent, srcPath string) {
			defer wg.Done()

			outPath := filepath.Join(flags.outDir, pdfName(srcPath))
			gen := pool.Acquire()
			defer pool.Release(gen)

			result, err := gen.Generate(ctx, pagesnap.Input{
				Pages:       []pagesnap.PageContent{page},
				Format:      flags.format,
				Orientation: flags.orientation,
				Filename:    outPath,
			})
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", srcPath, err))
				mu.Unlock()
				return
			}
			defer result.Ref.Release()

			mu.Lock()
			fmt.Fprintf(out, "Created %s (%d bytes)\n", outPath, len(result.Blob))
			mu.Unlock()
		}(pages[i], path)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// generatorOptions maps CLI flags onto library options.
func generatorOptions(flags *cliFlags) []pagesnap.Option {
	opts := []pagesnap.Option{pagesnap.WithOversample(flags.oversample)}
	if flags.timeout > 0 {
		opts = append(opts, pagesnap.WithTimeout(flags.timeout))
	}
	return opts
}

// buildInput assembles the generation input from a config file or
// positional fragment files, in order.
func buildInput(flags *cliFlags, args []string) (pagesnap.Input, error) {
	if flags.config != "" {
		return inputFromConfig(flags)
	}

	if len(args) == 0 {
		return pagesnap.Input{}, ErrNoInputs
	}

	pages := make([]pagesnap.PageContent, len(args))
	for i, path := range args {
		content, err := fragmentFromFile(path)
		if err != nil {
			return pagesnap.Input{}, err
		}
		pages[i] = content
	}

	output := flags.output
	if output == "" {
		output = pdfName(args[0])
	}

	return pagesnap.Input{
		Pages:       pages,
		Format:      flags.format,
		Orientation: flags.orientation,
		Filename:    output,
	}, nil
}

// inputFromConfig assembles the generation input from a YAML config.
// Flags set explicitly on the command line are not merged; the config is
// authoritative for the document it describes, except --output which
// overrides when given.
func inputFromConfig(flags *cliFlags) (pagesnap.Input, error) {
	cfg, err := LoadConfig(flags.config)
	if err != nil {
		return pagesnap.Input{}, err
	}

	pages := make([]pagesnap.PageContent, 0, len(cfg.Pages))
	for _, p := range cfg.Pages {
		switch {
		case p.Markup != "":
			pages = append(pages, pagesnap.RawMarkup(p.Markup))
		case isMarkdownFile(p.File) || p.Title != "":
			body, err := readFragment(p.File)
			if err != nil {
				return pagesnap.Input{}, err
			}
			title := p.Title
			if title == "" {
				title = titleFromPath(p.File)
			}
			pages = append(pages, pagesnap.MarkdownRecord(title, body))
		default:
			markup, err := readFragment(p.File)
			if err != nil {
				return pagesnap.Input{}, err
			}
			pages = append(pages, pagesnap.RawMarkup(markup))
		}
	}

	output := flags.output
	if output == "" {
		output = cfg.Document.Output
	}
	if output == "" {
		output = "output.pdf"
	}

	return pagesnap.Input{
		Pages:       pages,
		Format:      cfg.Document.Format,
		Orientation: cfg.Document.Orientation,
		Filename:    output,
	}, nil
}

// fragmentFromFile reads one fragment file and classifies it by extension:
// markdown becomes a structured record titled after the file, markup is
// passed through raw.
func fragmentFromFile(path string) (pagesnap.PageContent, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md", ".markdown":
		body, err := readFragment(path)
		if err != nil {
			return pagesnap.PageContent{}, err
		}
		return pagesnap.MarkdownRecord(titleFromPath(path), body), nil
	case ".html", ".htm":
		markup, err := readFragment(path)
		if err != nil {
			return pagesnap.PageContent{}, err
		}
		return pagesnap.RawMarkup(markup), nil
	default:
		return pagesnap.PageContent{}, fmt.Errorf("%w: got %q", ErrUnknownExtension, ext)
	}
}

// readFragment reads the content of a fragment file.
func readFragment(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadFragment, err)
	}
	return string(content), nil
}

// isMarkdownFile reports whether path has a .md or .markdown extension.
func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// titleFromPath derives a human-readable title from a file name:
// "q3-revenue_summary.md" -> "q3 revenue summary".
func titleFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.TrimSpace(name)
}

// pdfName swaps a fragment file's extension for .pdf.
func pdfName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}
