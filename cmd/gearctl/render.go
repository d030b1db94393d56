package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/gearcheck/internal/api"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printSection(w io.Writer, title string, t *table.Table) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(title))
	_, _ = fmt.Fprintln(w, t.String())
	_, _ = fmt.Fprintln(w)
}

func tallyTable(keyHeader string, tallies []api.Tally) *table.Table {
	t := newTable(keyHeader, "Present", "Donated", "Absent", "Coverage")
	for _, tl := range tallies {
		t.Row(
			tl.Key,
			strconv.Itoa(tl.Counts.Present),
			strconv.Itoa(tl.Counts.Donated),
			strconv.Itoa(tl.Counts.Absent),
			formatCoverage(tl.Coverage),
		)
	}
	return t
}

func formatCoverage(c float64) string {
	return strconv.FormatFloat(c, 'f', 1, 64) + "%"
}
