package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dfpa/pkg/observability"
	"github.com/matzehuels/dfpa/pkg/search"
)

var (
	liveLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	liveDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Messages
// =============================================================================

type targetMsg struct{ k, popSize int }

type generationMsg struct{ k, generation, conflicts int }

type foundMsg struct {
	k, generation int
	elapsed       time.Duration
}

type searchDoneMsg struct {
	res *search.Result
	err error
}

type tickMsg time.Time

// =============================================================================
// LiveModel - Search progress view
// =============================================================================

// liveTarget is one row of the target history.
type liveTarget struct {
	k          int
	generation int
	conflicts  int
	found      bool
}

// LiveModel is the bubbletea model that follows a running search.
type LiveModel struct {
	Name     string
	Start    time.Time
	Now      time.Time
	Targets  []liveTarget
	Result   *search.Result
	Err      error
	Aborted  bool
	finished bool
}

// NewLiveModel creates a live view for the graph called name.
func NewLiveModel(name string) LiveModel {
	now := time.Now()
	return LiveModel{Name: name, Start: now, Now: now}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		}
	case tickMsg:
		m.Now = time.Time(msg)
		if m.finished {
			return m, nil
		}
		return m, tick()
	case targetMsg:
		m.Targets = append(m.Targets, liveTarget{k: msg.k, conflicts: -1})
	case generationMsg:
		if t := m.current(msg.k); t != nil {
			t.generation = msg.generation
			t.conflicts = msg.conflicts
		}
	case foundMsg:
		if t := m.current(msg.k); t != nil {
			t.generation = msg.generation
			t.conflicts = 0
			t.found = true
		}
	case searchDoneMsg:
		m.Result, m.Err = msg.res, msg.err
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

// current returns the row for target k if it is the latest one.
func (m *LiveModel) current(k int) *liveTarget {
	if n := len(m.Targets); n > 0 && m.Targets[n-1].k == k {
		return &m.Targets[n-1]
	}
	return nil
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("dfpa " + m.Name))
	b.WriteString("\n")
	b.WriteString(liveDimStyle.Render("q quit"))
	b.WriteString("\n\n")

	best := "-"
	for _, t := range m.Targets {
		if t.found {
			best = strconv.Itoa(t.k)
		}
	}
	b.WriteString(liveLabelStyle.Render("Elapsed") + " " + StyleValue.Render(m.Now.Sub(m.Start).Round(100*time.Millisecond).String()) + "\n")
	b.WriteString(liveLabelStyle.Render("Best k") + " " + StyleNumber.Render(best) + "\n\n")

	rows := make([][]string, 0, len(m.Targets))
	for _, t := range m.Targets {
		conflicts := "-"
		if t.conflicts >= 0 {
			conflicts = strconv.Itoa(t.conflicts)
		}
		status := "searching"
		switch {
		case t.found:
			status = iconSuccess
		case m.finished || len(rows) < len(m.Targets)-1:
			status = iconError
		}
		rows = append(rows, []string{strconv.Itoa(t.k), strconv.Itoa(t.generation), conflicts, status})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("k", "Generation", "Conflicts", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(m.Targets) && m.Targets[row].found {
				return base.Foreground(colorGreen)
			}
			return base
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Hook Adapter
// =============================================================================

// liveHooks forwards search events to a running program.
type liveHooks struct {
	observability.NoopSearchHooks
	p *tea.Program
}

func (h liveHooks) OnTargetStart(_ context.Context, k, popSize int) {
	h.p.Send(targetMsg{k: k, popSize: popSize})
}

func (h liveHooks) OnGeneration(_ context.Context, k, generation, bestConflicts int) {
	h.p.Send(generationMsg{k: k, generation: generation, conflicts: bestConflicts})
}

func (h liveHooks) OnColoringFound(_ context.Context, k, generation int, elapsed time.Duration) {
	h.p.Send(foundMsg{k: k, generation: generation, elapsed: elapsed})
}

// runLive runs the search while a LiveModel renders its progress.
// Quitting the view cancels the search.
func runLive(ctx context.Context, s *search.Searcher, name string, initialK int) (*search.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewLiveModel(name), tea.WithContext(ctx))
	live := s.WithHooks(observability.MultiSearchHooks{s.Options().Hooks, liveHooks{p: p}})

	go func() {
		res, err := live.Run(ctx, initialK)
		p.Send(searchDoneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("live view: %w", err)
	}
	m, ok := final.(LiveModel)
	if !ok || m.Aborted || m.Result == nil {
		return nil, context.Canceled
	}
	return m.Result, m.Err
}
