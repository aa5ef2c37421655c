package changelog

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Assemble builds the document for mode from the category directories under root.
func (c *Collector) Assemble(root string, mode Mode) (*Document, error) {
	doc := &Document{Mode: mode}
	for _, category := range mode.Categories() {
		body, err := c.Collect(filepath.Join(root, string(category)))
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", category, err)
		}
		doc.Sections = append(doc.Sections, Section{Category: category, Body: body})
	}
	return doc, nil
}

// AssembleString is a convenience wrapper returning the rendered document.
func (c *Collector) AssembleString(root string, mode Mode) (string, error) {
	doc, err := c.Assemble(root, mode)
	if err != nil {
		return "", err
	}
	return RenderString(doc)
}

// String returns the document text: each section as "#### <heading>\n<body>",
// separated by a blank line, with no trailing newline.
func (d *Document) String() string {
	parts := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		parts = append(parts, "#### "+s.Category.Heading()+"\n"+s.Body)
	}
	return strings.Join(parts, "\n\n")
}

// Render writes the document followed by a single newline.
// Given the same document it produces identical output.
func Render(w io.Writer, d *Document) error {
	if _, err := io.WriteString(w, d.String()+"\n"); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// RenderString is a convenience function that renders to a string.
func RenderString(d *Document) (string, error) {
	var b strings.Builder
	if err := Render(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}
