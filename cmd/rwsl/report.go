package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rwsl-simulator/internal/game/simulation"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(22)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func renderReport(r simulation.Report, st simulation.Status) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("RWSL report: " + r.Scenario))
	b.WriteString("\n\n")

	conflicts := fmt.Sprintf("%d (%.1f%% of events)", r.ConflictCount, r.ConflictRatePercent)
	if r.ConflictCount > 0 {
		conflicts = alertStyle.Render(conflicts)
	}

	b.WriteString(lipgloss.JoinVertical(lipgloss.Left,
		row("Simulated time", fmt.Sprintf("%.1fs", r.TotalSimulatedTime)),
		row("Events", fmt.Sprint(r.TotalEvents)),
		row("Conflicts", conflicts),
		row("Aircraft spawned", fmt.Sprint(r.SpawnCount)),
		row("RWSL activations", fmt.Sprint(r.RWSLActivations)),
		row("Aircraft avg / peak", fmt.Sprintf("%.1f / %d", r.AverageAircraftCount, r.PeakAircraftCount)),
		row("Active at end", fmt.Sprintf("%d aircraft, %d lights", st.AircraftCount, st.FixtureSummary.Active)),
	))

	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Events by type"))
	b.WriteString("\n")

	types := make([]string, 0, len(r.EventTypeHistogram))
	for t := range r.EventTypeHistogram {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		b.WriteString(row("  "+t, fmt.Sprint(r.EventTypeHistogram[simulation.EventType(t)])))
		b.WriteString("\n")
	}

	if len(st.RecentEvents) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Last events"))
		b.WriteString("\n")
		for _, e := range st.RecentEvents {
			b.WriteString(hintStyle.Render(fmt.Sprintf("  [%7.1fs] %-22s %s", e.SimTime, e.Type, e.Description)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
