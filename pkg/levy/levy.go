// Package levy samples discretized Levy step sizes.
//
// A raw sample is c/x² with x drawn from the standard normal distribution.
// [Sampler.Adjusted] rounds raw samples and rejects them until one falls in
// [0, limit). The rejection loop is capped; hitting the cap yields
// [ErrUnreachable] instead of spinning forever on parameter choices whose
// range is practically unreachable.
package levy

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/matzehuels/dfpa/pkg/errors"
)

// DefaultMaxAttempts bounds the rejection loop of [Sampler.Adjusted].
const DefaultMaxAttempts = 10000

// ErrUnreachable reports that no sample in range was drawn within the cap.
var ErrUnreachable = errors.New(errors.ErrCodeUnreachableSample, "levy sample range unreachable")

// Sampler draws Levy samples from a caller-owned random stream.
// A Sampler is not safe for concurrent use; give each goroutine its own.
type Sampler struct {
	normal      distuv.Normal
	MaxAttempts int
}

// NewSampler returns a sampler reading from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{
		normal:      distuv.Normal{Mu: 0, Sigma: 1, Src: rng},
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Sample returns c/x² for a standard normal x.
func (s *Sampler) Sample(c float64) float64 {
	x := s.normal.Rand()
	return c / (x * x)
}

// Adjusted returns a rounded sample in [0, limit).
func (s *Sampler) Adjusted(limit int, c float64) (int, error) {
	if limit <= 0 {
		return 0, errors.Wrap(errors.ErrCodeUnreachableSample, ErrUnreachable, "empty range [0, %d)", limit)
	}
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for range attempts {
		r := math.Round(s.Sample(c))
		// x == 0 gives +Inf and NaN never compares below limit.
		if r >= 0 && r < float64(limit) {
			return int(r), nil
		}
	}
	return 0, errors.Wrap(errors.ErrCodeUnreachableSample, ErrUnreachable,
		"no sample below %d after %d attempts (c=%g)", limit, attempts, c)
}

// Adjusted is a convenience wrapper that samples once from rng.
func Adjusted(rng *rand.Rand, limit int, c float64) (int, error) {
	return NewSampler(rng).Adjusted(limit, c)
}
