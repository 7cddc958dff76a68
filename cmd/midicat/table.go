package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableSpec describes a summary table. Rows shorter than Headers are padded.
type tableSpec struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Aligns   []columnAlignment
	MaxWidth int
}

func renderTable(spec tableSpec) string {
	columns := len(spec.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if spec.Title != "" {
		tw.SetTitle(spec.Title)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = spec.Headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range spec.Rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(spec.Aligns) && spec.Aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    spec.MaxWidth,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
