package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/stylebind/pkg/styling"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	passTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var tableHeaders = []string{"PROP", "VALUES", "SANITIZE", "TEMPLATE", "HOST", "DEFAULT", "SOURCES", "RESOLVED"}

// renderTable prints one row per entry of ctx.
func renderTable(w io.Writer, ctx *styling.Context) {
	view := styling.NewDebugView(ctx)
	rows := [][]string{}
	for _, e := range ctx.Entries() {
		ev, _ := view.Entry(e.Name())
		rows = append(rows, []string{
			ev.Name(),
			strconv.Itoa(ev.ValuesCount()),
			strconv.FormatBool(ev.SanitizationRequired()),
			formatMask(ev.TemplateGuardMask()),
			formatMask(ev.HostGuardMask()),
			formatValue(ev.DefaultValue()),
			formatSources(ev.Sources()),
			formatValue(ev.Resolved()),
		})
	}

	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(padRow(tableHeaders, widths)))
	for _, row := range rows {
		fmt.Fprintln(w, padRow(row, widths))
	}
}

func padRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
	}
	return sb.String()
}

func formatValue(v styling.Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatSources(values []styling.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatMask(m styling.GuardMask) string {
	bits := m.Bits()
	if len(bits) == 0 {
		return "-"
	}
	parts := make([]string, len(bits))
	for i, b := range bits {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, ",")
}
