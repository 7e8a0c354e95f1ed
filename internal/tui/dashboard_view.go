package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/report"
)

// View renders the current view (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + SubtleStyle.Render("Press 'q' to quit") + "\n"
	case ViewStateLoading:
		return m.spinner.View() + " Loading snapshots..."
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m DashboardModel) renderListView() string {
	sections := []string{
		HeaderStyle.Render("AURORA DASHBOARD"),
		m.renderSummary(),
		m.table.View(),
		m.renderStatusBar(),
	}
	if m.showFilter {
		sections = append(sections, LabelStyle.Render("Filter: ")+m.textInput.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSummary shows the totals over the visible rows.
func (m DashboardModel) renderSummary() string {
	users, consumptions := 0, 0
	var co2 float64
	for _, r := range m.rows {
		users += r.UserCount
		consumptions += r.ConsumptionsCount
		co2 += totalCarbon(r)
	}
	return InfoStyle.Render(fmt.Sprintf("%s countries | %s users | %s consumptions | %s %s CO2",
		m.format.Number(int64(len(m.rows))),
		m.format.Number(int64(users)),
		m.format.Number(int64(consumptions)),
		m.format.Float(co2, m.opts.Precision),
		m.carbonUnit(),
	))
}

func (m DashboardModel) renderStatusBar() string {
	filterStatus := ""
	if m.textInput.Value() != "" {
		filterStatus = fmt.Sprintf(" | Filtered: %d/%d", len(m.rows), len(m.allRows))
	}
	status := fmt.Sprintf("Sort: %s%s | 'enter' report, 's' sort, '/' filter, 'q' quit",
		m.getSortLabel(), filterStatus)
	return SubtleStyle.Render(status)
}

// getSortLabel returns the human-readable label for the current sort field.
func (m DashboardModel) getSortLabel() string {
	switch m.sortBy {
	case SortByUsers:
		return "Users"
	case SortByCarbon:
		return "Carbon"
	case SortByName:
		return "Name"
	case numSortFields:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// renderDetailView shows the report of the selected country.
func (m DashboardModel) renderDetailView() string {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return msgSelectedOutOfBounds
	}
	row := m.rows[m.selected]

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(strings.ToUpper(row.Country)))
	content.WriteString("\n\n")

	text := report.AutoReport(m.ctx, m.allRows, report.Options{
		Language:   m.opts.Language,
		CountryIDs: []string{row.CountryID},
		CarbonUnit: m.opts.CarbonUnit,
		Precision:  m.opts.Precision,
	})
	content.WriteString(ValueStyle.Render(text))
	content.WriteString("\n\n")

	renderDetailShares(&content, row)
	renderDetailSources(&content, row)

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	return BoxStyle.Width(m.width - borderPadding).Render(content.String())
}

// renderDetailShares writes each category's share of the carbon total.
func renderDetailShares(content *strings.Builder, row aggregate.MetaData) {
	share := report.CategoryShares([]aggregate.MetaData{row})[0]
	content.WriteString(HeaderStyle.Render("CARBON SHARE"))
	content.WriteString("\n")
	for _, item := range []struct {
		label string
		value float64
	}{
		{"Electricity", share.Electricity},
		{"Heating", share.Heating},
		{"Transportation", share.Transportation},
	} {
		content.WriteString(LabelStyle.Render(fmt.Sprintf("  %-16s", item.label)))
		content.WriteString(ValueStyle.Render(report.ValueFormatterPercentage(item.value)))
		content.WriteString("\n")
	}
}

// renderDetailSources lists the sources recorded per category.
func renderDetailSources(content *strings.Builder, row aggregate.MetaData) {
	c := row.Consumptions
	cats := []struct {
		label string
		meta  aggregate.CategoryMeta
	}{
		{"Electricity", c.Electricity},
		{"Heating", c.Heating},
		{"Transportation", c.Transportation},
	}

	var lines []string
	for _, cat := range cats {
		for _, src := range cat.meta.Sources {
			lines = append(lines, fmt.Sprintf("  %-16s%s (%s)", cat.label, src.SourceName, strconv.Itoa(src.Count)))
		}
	}
	if len(lines) == 0 {
		return
	}
	content.WriteString("\n")
	content.WriteString(HeaderStyle.Render("SOURCES"))
	content.WriteString("\n")
	content.WriteString(ValueStyle.Render(strings.Join(lines, "\n")))
	content.WriteString("\n")
}
