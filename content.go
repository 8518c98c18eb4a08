package pagesnap

import (
	"context"
	"fmt"
	"sync"

	"github.com/pagesnap/pagesnap/internal/pipeline"
)

// contentKind discriminates the PageContent variant.
type contentKind int

const (
	kindEmpty contentKind = iota
	kindMarkup
	kindRecord
)

// PageContent is one page's visual content: either raw renderable markup
// or a structured snippet record whose markdown body is converted to
// markup on resolution. Immutable once handed to the generator.
type PageContent struct {
	kind   contentKind
	markup string
	record snippetRecord
}

// snippetRecord is the structured variant: a titled markdown snippet.
type snippetRecord struct {
	Title string
	Body  string
}

// RawMarkup wraps a ready-to-render markup string as page content.
func RawMarkup(markup string) PageContent {
	return PageContent{kind: kindMarkup, markup: markup}
}

// MarkdownRecord wraps a titled markdown snippet as page content.
// The body is converted to markup when the page is resolved.
func MarkdownRecord(title, body string) PageContent {
	return PageContent{kind: kindRecord, record: snippetRecord{Title: title, Body: body}}
}

// IsZero reports whether the content carries nothing to render.
func (p PageContent) IsZero() bool {
	switch p.kind {
	case kindMarkup:
		return p.markup == ""
	case kindRecord:
		return p.record.Body == ""
	default:
		return true
	}
}

// resolve produces the final markup for this page.
func (p PageContent) resolve(ctx context.Context, conv pipeline.HTMLConverter) (string, error) {
	switch p.kind {
	case kindMarkup:
		return p.markup, nil
	case kindRecord:
		markup, err := conv.ToHTML(ctx, p.record.Title, p.record.Body)
		if err != nil {
			return "", fmt.Errorf("converting snippet to markup: %w", err)
		}
		return markup, nil
	default:
		return "", ErrEmptyContent
	}
}

// ContentSource supplies an ordered list of page contents, one per page.
type ContentSource interface {
	Pages(ctx context.Context) ([]PageContent, error)
}

// SnippetSession is an in-memory ContentSource that accumulates page
// contents in insertion order. It replaces module-level snippet caches
// with an explicit per-run session object.
type SnippetSession struct {
	mu    sync.Mutex
	pages []PageContent
}

// NewSnippetSession creates an empty session.
func NewSnippetSession() *SnippetSession {
	return &SnippetSession{}
}

// AddMarkup appends a raw-markup page to the session.
func (s *SnippetSession) AddMarkup(markup string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, RawMarkup(markup))
}

// AddRecord appends a structured snippet page to the session.
func (s *SnippetSession) AddRecord(title, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, MarkdownRecord(title, body))
}

// Len returns the number of pages accumulated so far.
func (s *SnippetSession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Pages returns the accumulated contents in insertion order.
// The returned slice is a copy; the session can keep accumulating.
func (s *SnippetSession) Pages(ctx context.Context) ([]PageContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PageContent, len(s.pages))
	copy(out, s.pages)
	return out, nil
}

// Compile-time interface check.
var _ ContentSource = (*SnippetSession)(nil)
