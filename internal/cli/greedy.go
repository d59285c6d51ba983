package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dfpa/pkg/graph"
	"github.com/matzehuels/dfpa/pkg/greedy"
)

// greedyCommand creates the greedy command that compares the constructors.
func (c *CLI) greedyCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "greedy <graph.col>",
		Short:             "Compare the greedy constructors on a graph",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadFile(args[0], graph.Standard)
			if err != nil {
				return err
			}
			printInfo("Graph %s", StyleHighlight.Render(filepath.Base(args[0])))
			printGraphStats(g.Len(), g.EdgeCount(), g.MaxDegree())
			printNewline()
			fmt.Println(greedyTable(compareGreedy(g)))
			return nil
		},
	}
}

// greedyRow is one constructor's outcome.
type greedyRow struct {
	name     string
	colors   int
	duration time.Duration
}

// compareGreedy runs every constructor plus gonum's recursive largest first.
func compareGreedy(g *graph.Graph) []greedyRow {
	rows := make([]greedyRow, 0, len(greedy.Variants)+1)
	for _, v := range greedy.Variants {
		start := time.Now()
		k, _ := v.Build(g)
		rows = append(rows, greedyRow{v.Name, k, time.Since(start)})
	}
	start := time.Now()
	k := g.RecursiveLargestFirst()
	rows = append(rows, greedyRow{"rlf (gonum)", k, time.Since(start)})
	return rows
}

func greedyTable(rows []greedyRow) string {
	best := rows[0].colors
	for _, r := range rows {
		best = min(best, r.colors)
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.name, strconv.Itoa(r.colors), r.duration.Round(time.Microsecond).String()}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Constructor", "Colors", "Time").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(rows) && rows[row].colors == best {
				return base.Foreground(colorGreen)
			}
			return base
		}).
		Render()
}
