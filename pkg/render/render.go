package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/matzehuels/coursefinder/pkg/catalog"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatTable    Format = "table"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists every supported format, in help-text order.
var Formats = []Format{FormatTable, FormatText, FormatMarkdown, FormatCSV, FormatHTML, FormatJSON}

// ParseFormat resolves a format name. Matching is case-insensitive and "md"
// is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Write renders rows to w in the given format.
func Write(w io.Writer, rows []catalog.Row, f Format) error {
	var out string
	switch f {
	case FormatTable:
		out = Table(rows)
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatText:
		out = newWriter(rows).Render()
	case FormatMarkdown:
		out = newWriter(rows).RenderMarkdown()
	case FormatCSV:
		out = newWriter(rows).RenderCSV()
	case FormatHTML:
		out = newWriter(rows).RenderHTML()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// newWriter builds a go-pretty table over rows.
func newWriter(rows []catalog.Row) table.Writer {
	t := table.NewWriter()
	header := make(table.Row, len(catalog.Columns))
	for i, c := range catalog.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.CourseID,
			r.Name,
			r.Credits,
			r.GenEdString(),
			r.ProfessorString(),
			r.SeatsOpen,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: len(catalog.Columns), Align: text.AlignRight},
	})
	t.SetStyle(table.StyleRounded)
	return t
}

func writeJSON(w io.Writer, rows []catalog.Row) error {
	if rows == nil {
		rows = []catalog.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Debug writes the raw course JSON of every row that carries it.
func Debug(w io.Writer, rows []catalog.Row) error {
	for _, r := range rows {
		if len(r.Raw) == 0 {
			continue
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
			buf.Reset()
			buf.Write(r.Raw)
		}
		if _, err := fmt.Fprintf(w, "Course: %s\n%s\n", r.CourseID, buf.String()); err != nil {
			return err
		}
	}
	return nil
}
