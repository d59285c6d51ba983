package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dfpa/pkg/pollinate"
)

// Sweep grids.
var (
	DefaultLambdas  = []float64{1.0, 1.25, 1.5, 1.75}
	DefaultSwitches = []float64{0.2, 0.4, 0.6, 0.8}
)

// Sweep kinds.
const (
	SweepParams      = "params"
	SweepPollinators = "pollinators"
)

// SweepPoint is one setting of a sweep and its suite outcome.
type SweepPoint struct {
	Label      string        `json:"label"`
	Lambda     float64       `json:"lambda"`
	SwitchP    float64       `json:"switch_p"`
	Pollinator string        `json:"pollinator"`
	Total      float64       `json:"total"`
	Duration   time.Duration `json:"duration"`
	Report     *Report       `json:"report"`
}

// SweepResult is the outcome of a sweep.
type SweepResult struct {
	ID     string       `json:"id"`
	Kind   string       `json:"kind"`
	Suite  string       `json:"suite"`
	Points []SweepPoint `json:"points"`
}

// Best returns the point with the lowest total, first on ties.
func (s *SweepResult) Best() (SweepPoint, bool) {
	if len(s.Points) == 0 {
		return SweepPoint{}, false
	}
	best := s.Points[0]
	for _, p := range s.Points[1:] {
		if p.Total < best.Total {
			best = p
		}
	}
	return best, true
}

// SweepParameters runs base once per (lambda, switch_p) pair. Nil grids use
// DefaultLambdas and DefaultSwitches.
func (r *Runner) SweepParameters(ctx context.Context, base Suite, lambdas, switches []float64) (*SweepResult, error) {
	if lambdas == nil {
		lambdas = DefaultLambdas
	}
	if switches == nil {
		switches = DefaultSwitches
	}
	base = base.WithDefaults()
	out := &SweepResult{ID: uuid.NewString(), Kind: SweepParams, Suite: base.Name}

	for _, lambda := range lambdas {
		for _, sp := range switches {
			s := base
			s.Parameters.Lambda = lambda
			s.Parameters.SwitchP = sp
			label := fmt.Sprintf("λ=%g p=%g", lambda, sp)
			r.Logger.Info("sweep point", "lambda", lambda, "switch_p", sp)
			if err := r.sweepPoint(ctx, out, s, label); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

// SweepPollinators runs base once per pollinator. Nil names means every
// registered pollinator.
func (r *Runner) SweepPollinators(ctx context.Context, base Suite, names []string) (*SweepResult, error) {
	if names == nil {
		names = pollinate.Names()
	}
	base = base.WithDefaults()
	out := &SweepResult{ID: uuid.NewString(), Kind: SweepPollinators, Suite: base.Name}

	for _, name := range names {
		s := base
		s.Pollinator = name
		r.Logger.Info("sweep point", "pollinator", name)
		if err := r.sweepPoint(ctx, out, s, name); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (r *Runner) sweepPoint(ctx context.Context, out *SweepResult, s Suite, label string) error {
	report, err := r.RunSuite(ctx, s)
	if err != nil {
		return fmt.Errorf("sweep %s: %w", label, err)
	}
	out.Points = append(out.Points, SweepPoint{
		Label:      label,
		Lambda:     s.Parameters.Lambda,
		SwitchP:    s.Parameters.SwitchP,
		Pollinator: s.Pollinator,
		Total:      report.Total,
		Duration:   report.Duration,
		Report:     report,
	})
	return nil
}
