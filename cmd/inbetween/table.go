package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	inbetween "github.com/tphakala/go-cel-inbetween"
)

const percentScale = 100

// column describes one table column. Numeric columns are right aligned.
type column struct {
	header  string
	numeric bool
}

// renderTable draws rows under cols in rounded style. Headers keep their
// case; missing cells render empty and extra cells are dropped.
func renderTable(cols []column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.header
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// renderFrames lists the written frames.
func renderFrames(res *inbetween.Result) string {
	rows := make([][]string, 0, len(res.Frames))
	for _, f := range res.Frames {
		rows = append(rows, []string{
			strconv.Itoa(f.Ordinal),
			strconv.Itoa(f.Index),
			strconv.FormatFloat(f.T, 'f', 4, 64),
			f.Name,
		})
	}
	return renderTable([]column{
		{header: "#", numeric: true},
		{header: "Index", numeric: true},
		{header: "t", numeric: true},
		{header: "File"},
	}, rows)
}

// renderStats summarizes the flow and weight maps shared by all frames.
func renderStats(res *inbetween.Result) string {
	rows := [][]string{
		{"Size", fmt.Sprintf("%dx%d", res.Width, res.Height)},
		{"Mean flow A→B", fmt.Sprintf("%.3f px", res.ForwardFlowMean)},
		{"Mean flow B→A", fmt.Sprintf("%.3f px", res.BackwardFlowMean)},
		{"Reliable", fmt.Sprintf("%.1f%%", res.ReliableFraction*percentScale)},
		{"Edge protected", fmt.Sprintf("%.1f%%", res.ProtectedFraction*percentScale)},
	}
	return renderTable([]column{{header: "Metric"}, {header: "Value", numeric: true}}, rows)
}
