package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown converts view content from markdown to sanitized HTML.
type Markdown struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &Markdown{
		md:        md,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts src to HTML and strips anything the UGC policy rejects.
func (m *Markdown) Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(m.sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// RenderFile reads name from fsys and renders it.
func (m *Markdown) RenderFile(fsys fs.FS, name string) (template.HTML, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("read content %s: %w", name, err)
	}
	return m.Render(src)
}
