// Package html extracts readable text from HTML files.
package html

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML files.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".html", ".htm"}
}

// DocType returns the provenance class for HTML files.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeFramework
}

// Extract parses the file and returns its visible text content.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}
	text, err := StripTags(string(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}
	return text, nil
}

// skippedElements are elements whose text content is never visible prose.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"svg":      true,
	"template": true,
}

// blockElements get a paragraph break so the chunker sees document structure.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "blockquote": true, "pre": true, "table": true,
	"br": true, "hr": true,
}

var (
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// StripTags converts an HTML fragment to plain text. Script, style and other
// non-prose elements are dropped entirely; block elements become paragraph
// breaks. It is also used on HTML bodies returned by upstream content APIs.
func StripTags(fragment string) (string, error) {
	root, err := nethtml.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == nethtml.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == nethtml.ElementNode && blockElements[n.Data] {
			sb.WriteString("\n\n")
		}
	}
	walk(root)

	text := sb.String()
	text = multiSpaces.ReplaceAllString(text, " ")
	// Trim per-line whitespace so blank-line paragraph breaks survive.
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	text = strings.Join(lines, "\n")
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
