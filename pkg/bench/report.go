package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Table renders a suite report with one row per instance.
// Rows whose best try reached the known chromatic number are highlighted.
func Table(r *Report) string {
	rows := make([][]string, 0, len(r.Instances))
	for _, inst := range r.Instances {
		rows = append(rows, []string{
			inst.Name,
			strconv.Itoa(inst.Chromatic),
			strconv.Itoa(inst.InitialK),
			formatTries(inst.Colors()),
			strconv.Itoa(inst.Best),
			strconv.FormatFloat(inst.Average, 'f', 2, 64),
			inst.AvgTime.Round(time.Millisecond).String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Graph", "k*", "k_init", "DFPA", "Best", "Average", "Avg time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col != 4 || row >= len(r.Instances) {
				return base
			}
			if inst := r.Instances[row]; inst.Best <= inst.Chromatic {
				return base.Inherit(hitStyle)
			}
			return base.Inherit(missStyle)
		})

	return t.Render() + fmt.Sprintf("\nTotal average colors: %.2f\n", r.Total)
}

// SweepTable renders one row per sweep point.
func SweepTable(s *SweepResult) string {
	var headers []string
	switch s.Kind {
	case SweepPollinators:
		headers = []string{"Pollinator", "Num colors", "CPU time"}
	default:
		headers = []string{"lambda", "switch_p", "Num colors", "CPU time"}
	}

	best, _ := s.Best()
	rows := make([][]string, 0, len(s.Points))
	for _, p := range s.Points {
		total := strconv.FormatFloat(p.Total, 'f', 2, 64)
		elapsed := p.Duration.Round(time.Millisecond).String()
		if s.Kind == SweepPollinators {
			rows = append(rows, []string{p.Pollinator, total, elapsed})
		} else {
			rows = append(rows, []string{
				strconv.FormatFloat(p.Lambda, 'g', -1, 64),
				strconv.FormatFloat(p.SwitchP, 'g', -1, 64),
				total, elapsed,
			})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if row < len(s.Points) && s.Points[row].Label == best.Label {
				return base.Inherit(hitStyle)
			}
			return base
		})
	return t.Render() + "\n"
}

// WriteJSON writes v (a *Report or *SweepResult) as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTries(colors []int) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
