// Package pipeline converts structured snippet records into renderable markup.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/pagesnap/pagesnap/internal/assets"
)

// ErrHTMLConversion indicates markup conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// pageTemplate wraps Goldmark's fragment output in a complete HTML5
// document: title, embedded stylesheet, body.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// HTMLConverter abstracts snippet-to-markup conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, title, markdown string) (string, error)
}

// GoldmarkConverter converts markdown snippets to styled HTML pages using
// goldmark (pure Go).
type GoldmarkConverter struct {
	md  goldmark.Markdown
	css string
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// syntax highlighting, and the embedded page stylesheet.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes for external stylesheet control
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
			// Note: WithUnsafe() intentionally not used. Raw markup pages
			// bypass this converter entirely.
		),
	)
	return &GoldmarkConverter{md: md, css: assets.DefaultStyle()}
}

// ToHTML converts a titled markdown snippet to a standalone HTML5 page.
// The title becomes both the document title and the leading heading.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, title, markdown string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if title != "" {
		markdown = "# " + title + "\n\n" + markdown
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: fmt.Sprintf(pageTemplate, html.EscapeString(title), c.css, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
