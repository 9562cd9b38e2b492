// Package render executes the readout templates against a built model.
package render

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/charmbracelet/glamour"

	"github.com/trokit/aerotro/internal/tro"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Format selects a template variant.
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "text", "html", "markdown" and the aliases "txt", "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Ext returns the file extension for documents in this format.
func (f Format) Ext() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatMarkdown:
		return ".md"
	}
	return ".txt"
}

// TemplateFileName selects the template for a format; unknown formats get plain text.
func TemplateFileName(f Format) string {
	switch f {
	case FormatHTML:
		return "aero.html.tmpl"
	case FormatMarkdown:
		return "aero.md.tmpl"
	}
	return "aero.tmpl"
}

// Renderer holds the parsed templates. Row format functions are bound per
// render, so a Renderer may be shared between goroutines.
type Renderer struct {
	text map[Format]*texttemplate.Template
	html *htmltemplate.Template
}

// placeholderFuncs let templates parse before a report supplies the row formats.
func placeholderFuncs() map[string]any {
	return map[string]any{
		tro.FormatArmorRow:     func(cols ...any) string { return "" },
		tro.FormatEquipmentRow: func(cols ...any) string { return "" },
		"join":                 join,
	}
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{text: make(map[Format]*texttemplate.Template)}

	for _, f := range []Format{FormatText, FormatMarkdown} {
		name := TemplateFileName(f)
		t, err := texttemplate.New(name).Funcs(placeholderFuncs()).ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.text[f] = t
	}

	name := TemplateFileName(FormatHTML)
	h, err := htmltemplate.New(name).Funcs(placeholderFuncs()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	r.html = h

	return r, nil
}

// Render writes the readout for report in format f to w.
func (r *Renderer) Render(w io.Writer, report *tro.Report, f Format) error {
	data := report.Model.Native()
	funcs := rowFuncs(report)

	if f == FormatHTML {
		t, err := r.html.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone template: %w", err)
		}
		if err := t.Funcs(funcs).Execute(w, data); err != nil {
			return fmt.Errorf("failed to render %s: %w", f, err)
		}
		return nil
	}

	base, ok := r.text[f]
	if !ok {
		base = r.text[FormatText]
	}
	t, err := base.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone template: %w", err)
	}
	if err := t.Funcs(funcs).Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", f, err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(report *tro.Report, f Format) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, report, f); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func rowFuncs(report *tro.Report) map[string]any {
	funcs := map[string]any{}
	for _, name := range []string{tro.FormatArmorRow, tro.FormatEquipmentRow} {
		f, ok := report.Formats[name]
		if !ok {
			f = tro.RowFormat{}
		}
		funcs[name] = f.Format
	}
	return funcs
}

// join concatenates list items with sep. Templates see model lists as []any.
func join(items any, sep string) string {
	switch v := items.(type) {
	case []string:
		return strings.Join(v, sep)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, sep)
	case nil:
		return ""
	}
	return fmt.Sprint(items)
}

// Pretty renders a markdown document for the terminal. wordWrap of zero
// disables wrapping.
func Pretty(markdown string, wordWrap int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
