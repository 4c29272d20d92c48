package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// wrapWidth bounds free-text columns such as error details.
const wrapWidth = 60

type column struct {
	title string
	align text.Align
	// maxWidth wraps cell content beyond this many runes; zero disables wrapping.
	maxWidth int
}

func textColumn(title string) column { return column{title: title, align: text.AlignLeft} }

func numberColumn(title string) column { return column{title: title, align: text.AlignRight} }

func wrapColumn(title string) column {
	return column{title: title, align: text.AlignLeft, maxWidth: wrapWidth}
}

// renderTable draws rows under columns. Missing cells render empty and
// surplus cells are dropped.
func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
			WidthMax:    col.maxWidth,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i := range row {
			row[i] = ""
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
