// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Preview writes the first n records as a Markdown table. Cells are
// flattened to one line and truncated to maxWidth display columns, so CJK
// text lines up with ASCII.
func (d *Dataset) Preview(w io.Writer, n, maxWidth int) error {
	if n < 0 {
		n = 0
	}
	if n > d.NumRows() {
		n = d.NumRows()
	}
	if maxWidth < 4 {
		maxWidth = 4
	}

	table := make([][]string, 0, n+1)
	table = append(table, d.Columns())
	for i := 0; i < n; i++ {
		row := d.Row(i)
		for c, v := range row {
			row[c] = runewidth.Truncate(flatten(v), maxWidth, "...")
		}
		table = append(table, row)
	}

	widths := make([]int, len(d.cols))
	for _, row := range table {
		for c, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[c] {
				widths[c] = cw
			}
		}
	}
	for c := range widths {
		if widths[c] < 3 {
			widths[c] = 3
		}
	}

	writeRow := func(cells []string) error {
		var sb strings.Builder
		sb.WriteString("|")
		for c, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, widths[c]))
			sb.WriteString(" |")
		}
		_, err := fmt.Fprintln(w, sb.String())
		return err
	}

	if err := writeRow(table[0]); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for c, wd := range widths {
		sep[c] = strings.Repeat("-", wd)
	}
	if err := writeRow(sep); err != nil {
		return err
	}
	for _, row := range table[1:] {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

// flatten collapses runs of whitespace, newlines included, into single spaces.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
