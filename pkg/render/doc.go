// Package render turns result rows into tables and dumps.
//
// # Overview
//
// This package renders the results table in every supported output format:
//
//   - table: a styled terminal table (lipgloss)
//   - text: a plain boxed table for logs and pipes
//   - markdown, csv, html: exports (go-pretty)
//   - json: the rows as a JSON array
//
// All formats share the same columns, in [catalog.Columns] order.
//
// # Usage
//
//	if err := render.Write(os.Stdout, result.Rows, render.FormatMarkdown); err != nil {
//	    return err
//	}
//
// # Debug Dumps
//
// [Debug] writes each row's raw course JSON, as returned by the catalog, for
// searches run in debug mode.
package render
