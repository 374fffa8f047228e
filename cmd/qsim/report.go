package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theapemachine/qsim"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#16858E")).
			Padding(0, 1)
)

const barWidth = 40

type countRow struct {
	bits  string
	count int
}

type expectationRow struct {
	label string
	value float64
}

type report struct {
	circuit      string
	kind         qsim.Kind
	settings     runSettings
	counts       []countRow
	expectations []expectationRow
	metrics      map[string]interface{}
}

func newReport(circuit string, kind qsim.Kind, settings runSettings) *report {
	return &report{circuit: circuit, kind: kind, settings: settings}
}

func (r *report) addCount(bits string, count int) {
	r.counts = append(r.counts, countRow{bits, count})
}

func (r *report) addExpectation(label string, value float64) {
	r.expectations = append(r.expectations, expectationRow{label, value})
}

func (r *report) render() string {
	var b strings.Builder

	header := fmt.Sprintf("%s on %d qubits, %s simulator, %d shots over %d runs, seed %d",
		r.circuit, r.settings.qubits, r.kind, r.settings.shots, r.settings.runs, r.settings.seed)
	if r.settings.noise != "" {
		header += fmt.Sprintf(", %s noise p=%g", r.settings.noise, r.settings.prob)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	for _, row := range r.counts {
		width := 0
		if r.settings.shots > 0 {
			width = row.count * barWidth / r.settings.shots
		}
		fmt.Fprintf(&b, "%s %6d %s\n",
			labelStyle.Render(row.bits), row.count, barStyle.Render(strings.Repeat("#", width)))
	}

	if len(r.expectations) > 0 {
		b.WriteString("\n")
		for _, row := range r.expectations {
			fmt.Fprintf(&b, "%s %+.4f\n", labelStyle.Render(row.label), row.value)
		}
	}

	if r.metrics != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %v\n", labelStyle.Render("operations"), r.metrics["operations"])
		fmt.Fprintf(&b, "%s %vµs\n", labelStyle.Render("p99 latency"), r.metrics["p99_latency"])
	}

	return boxStyle.Render(b.String()) + "\n"
}
