package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

const tabPadding = 2

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveFormat returns the --output value, or the configured default when
// the flag is empty.
func resolveFormat(flag string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		format = config.GetGlobalConfig().Output.DefaultFormat
	}
	if !slices.Contains(config.OutputFormats, format) {
		return "", fmt.Errorf("unsupported output format %q (valid: %s)",
			format, strings.Join(config.OutputFormats, ", "))
	}
	return format, nil
}

// renderTable writes a styled table to terminals and an aligned plain
// table otherwise.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	if isTerminal(w) {
		return renderStyledTable(w, headers, rows)
	}
	return renderPlainTable(w, headers, rows)
}

func renderPlainTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	rules := make([]string, len(headers))
	for i, h := range headers {
		rules[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func renderStyledTable(w io.Writer, headers []string, rows [][]string) error {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("33")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// renderTitle writes a bold heading on terminals and plain text otherwise.
func renderTitle(w io.Writer, title string) {
	if isTerminal(w) {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}
	fmt.Fprintln(w, title)
}

// writeRecords writes items as one indented JSON array or as one JSON
// object per line.
func writeRecords[T any](w io.Writer, format string, items []T) error {
	if format != config.FormatNDJSON {
		if items == nil {
			items = []T{}
		}
		return summary.WriteJSON(w, items)
	}

	enc := json.NewEncoder(w)
	for i := range items {
		if err := enc.Encode(items[i]); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}
	return nil
}
