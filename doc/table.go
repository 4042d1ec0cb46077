package doc

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

var cellReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"|", `\|`,
)

// cell makes s safe to use within a single table cell. Runs of spaces
// are kept, since they may be part of a code span.
//
func cell(s string) string {
	return strings.TrimSpace(cellReplacer.Replace(s))
}

// writeTable writes a GitHub flavoured markdown table.
func writeTable(w io.Writer, header []string, rows [][]string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	t.SetCenterSeparator("|")
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cell(c)
		}
		t.Append(cells)
	}

	t.Render()
}
