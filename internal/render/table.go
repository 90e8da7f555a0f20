package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// cell is one table cell: raw text plus an optional color applied after
// padding, so ANSI codes never skew column widths.
type cell struct {
	text  string
	style func(a ...interface{}) string
}

func plain(s string) cell { return cell{text: s} }

func styled(s string, f func(a ...interface{}) string) cell {
	return cell{text: s, style: f}
}

// writeTable renders a rounded box-drawing table, the look the original
// schedule tables had.
func writeTable(w io.Writer, headers []cell, rows [][]cell) {
	cols := len(headers)
	widths := make([]int, cols)
	measure := func(r []cell) {
		for i, c := range r {
			if i < cols {
				if n := utf8.RuneCountInString(c.text); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}
	measure(headers)
	for _, r := range rows {
		measure(r)
	}

	rule := func(left, mid, right string) {
		parts := make([]string, cols)
		for i, width := range widths {
			parts[i] = strings.Repeat("─", width+2)
		}
		fmt.Fprintln(w, left+strings.Join(parts, mid)+right)
	}
	line := func(r []cell) {
		parts := make([]string, cols)
		for i := range parts {
			text := ""
			var style func(a ...interface{}) string
			if i < len(r) {
				text = r[i].text
				style = r[i].style
			}
			padded := text + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(text))
			if style != nil {
				padded = style(padded)
			}
			parts[i] = " " + padded + " "
		}
		fmt.Fprintln(w, "│"+strings.Join(parts, "│")+"│")
	}

	rule("╭", "┬", "╮")
	line(headers)
	rule("├", "┼", "┤")
	for _, r := range rows {
		line(r)
	}
	rule("╰", "┴", "╯")
}
