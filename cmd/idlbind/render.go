package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"idlbind/internal/driver"
	"idlbind/internal/ui"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// heading renders a section title; plain when color is off.
func heading(title string) string {
	if color.NoColor {
		return title
	}
	return headingStyle.Render(title)
}

func dim(s string) string {
	if color.NoColor {
		return s
	}
	return dimStyle.Render(s)
}

// table writes rows with every column but the last padded to its widest
// cell, measured in display cells.
func table(w io.Writer, indent string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
			} else {
				cells[i] = ui.Pad(cell, widths[i])
			}
		}
		fmt.Fprintln(w, strings.TrimRight(indent+strings.Join(cells, "  "), " "))
	}
}

func renderReport(w io.Writer, report *driver.Report, members bool) {
	title := fmt.Sprintf("Interfaces (%d)", len(report.Interfaces))
	if report.Cached {
		title += " " + dim("[cached]")
	}
	fmt.Fprintln(w, heading(title))

	rows := make([][]string, 0, len(report.Interfaces))
	for _, ir := range report.Interfaces {
		rows = append(rows, []string{ir.ID, ir.Target, interfaceSummary(ir)})
	}
	table(w, "  ", rows)

	if members {
		for _, ir := range report.Interfaces {
			if ir.Suppressed {
				continue
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, heading(ir.ID)+" "+dim("→ "+ir.Implementation))
			renderMembers(w, ir)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(fmt.Sprintf("Types (%d)", len(report.Types))))
	rows = rows[:0]
	for _, tr := range report.Types {
		rows = append(rows, []string{tr.Name, tr.Kind, tr.Target, tr.Native})
	}
	table(w, "  ", rows)
}

func interfaceSummary(ir driver.InterfaceReport) string {
	var parts []string
	switch {
	case ir.Suppressed:
		parts = append(parts, "suppressed")
	case ir.Callback:
		parts = append(parts, "callback")
	}
	if ir.MergedInto != "" {
		parts = append(parts, "merged into "+ir.MergedInto)
	}
	if ir.Constructor != nil {
		parts = append(parts, "ctor")
	}
	if n := len(ir.Operations); n > 0 {
		parts = append(parts, fmt.Sprintf("%d ops", n))
	}
	if n := len(ir.Attributes); n > 0 {
		parts = append(parts, fmt.Sprintf("%d attrs", n))
	}
	return strings.Join(parts, ", ")
}

func renderMembers(w io.Writer, ir driver.InterfaceReport) {
	var rows [][]string
	if c := ir.Constructor; c != nil {
		rows = append(rows, []string{"new", c.Returns + "(" + c.Params + ")"})
	}
	for _, op := range ir.Operations {
		rows = append(rows, []string{op.Returns, signatureText(op)})
		if op.Future != nil {
			rows = append(rows, []string{op.Future.Returns, signatureText(*op.Future)})
		}
	}
	for _, attr := range ir.Attributes {
		access := "get"
		if !attr.ReadOnly {
			access = "get/set"
		}
		rows = append(rows, []string{attr.Type, attr.ID + " " + dim("("+access+")")})
	}
	table(w, "  ", rows)
}

func signatureText(sig driver.Signature) string {
	prefix := ""
	if sig.Static {
		prefix = "static "
	}
	return prefix + sig.Name + "(" + sig.Params + ")"
}
