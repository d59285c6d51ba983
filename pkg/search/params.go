package search

import "github.com/matzehuels/dfpa/pkg/errors"

// Parameters controls the search dynamics.
type Parameters struct {
	Lambda        float64 `json:"lambda" toml:"lambda"`                 // Levy scale (default: 1.5)
	SwitchP       float64 `json:"switch_p" toml:"switch_p"`             // Global-vs-local and reinit probability (default: 0.2)
	LifetimeLimit int     `json:"lifetime_limit" toml:"lifetime_limit"` // Stagnation threshold in generations (default: 30)
}

// StandardParameters returns the parameters used when none are given.
func StandardParameters() Parameters {
	return Parameters{
		Lambda:        1.5,
		SwitchP:       0.2,
		LifetimeLimit: 30,
	}
}

// Validate checks that the parameters describe a runnable search.
func (p Parameters) Validate() error {
	if !(p.Lambda > 0) {
		return errors.New(errors.ErrCodeInvalidParameters, "lambda must be positive, got %g", p.Lambda)
	}
	if !(p.SwitchP >= 0 && p.SwitchP <= 1) {
		return errors.New(errors.ErrCodeInvalidParameters, "switch_p must be in [0, 1], got %g", p.SwitchP)
	}
	if p.LifetimeLimit < 0 {
		return errors.New(errors.ErrCodeInvalidParameters, "lifetime_limit must be non-negative, got %d", p.LifetimeLimit)
	}
	return nil
}
