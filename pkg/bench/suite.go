package bench

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dfpa/pkg/errors"
	"github.com/matzehuels/dfpa/pkg/greedy"
	"github.com/matzehuels/dfpa/pkg/pollinate"
	"github.com/matzehuels/dfpa/pkg/search"
)

// DefaultTries is the number of independent runs per instance.
const DefaultTries = 10

//go:embed final.toml
var finalSuite string

// Instance is one graph of a suite.
type Instance struct {
	Name      string `toml:"name" json:"name"`           // Display name; also <name>.col under graph_dir
	Path      string `toml:"path" json:"path,omitempty"` // Explicit file path (overrides graph_dir)
	Chromatic int    `toml:"chromatic" json:"chromatic"` // Best known chromatic number, used as stop threshold
}

// Suite is a named list of instances plus the search configuration shared
// by every run.
type Suite struct {
	Name           string            `toml:"name" json:"name"`
	GraphDir       string            `toml:"graph_dir" json:"graph_dir"`
	Tries          int               `toml:"tries" json:"tries"`                     // default: 10
	Greedy         string            `toml:"greedy" json:"greedy"`                   // default: dsatur-incremental
	Pollinator     string            `toml:"pollinator" json:"pollinator"`           // default: pollinate.Default
	PopulationSize int               `toml:"population_size" json:"population_size"` // default: search default
	MaxGenerations int               `toml:"max_generations" json:"max_generations"` // default: search default
	Seed           uint64            `toml:"seed" json:"seed"`                       // 0: random seed per try
	Parameters     search.Parameters `toml:"parameters" json:"parameters"`
	Instances      []Instance        `toml:"instance" json:"instances"`
}

// FinalSuite returns the built-in benchmark suite.
func FinalSuite() Suite {
	s, err := ParseSuite([]byte(finalSuite))
	if err != nil {
		panic("bench: built-in suite: " + err.Error())
	}
	return s
}

// LoadSuite reads and validates a suite file. A relative graph_dir is
// resolved against the suite file's directory.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Suite{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "suite %s", path)
		}
		return Suite{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "suite %s", path)
	}
	s, err := ParseSuite(data)
	if err != nil {
		return Suite{}, errors.Wrap(errors.ErrCodeInvalidSuite, err, "suite %s", path)
	}
	if s.GraphDir != "" && !filepath.IsAbs(s.GraphDir) {
		s.GraphDir = filepath.Join(filepath.Dir(path), s.GraphDir)
	}
	return s, nil
}

// ParseSuite decodes TOML suite data, applies defaults and validates it.
func ParseSuite(data []byte) (Suite, error) {
	var s Suite
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Suite{}, errors.Wrap(errors.ErrCodeInvalidSuite, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Suite{}, errors.New(errors.ErrCodeInvalidSuite, "unknown key %q", undecoded[0].String())
	}
	if md.IsDefined("parameters") {
		if err := s.Parameters.Validate(); err != nil {
			return Suite{}, errors.Wrap(errors.ErrCodeInvalidSuite, err, "parameters")
		}
	}
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return Suite{}, err
	}
	return s, nil
}

// WithDefaults returns a copy with zero values replaced by defaults.
func (s Suite) WithDefaults() Suite {
	if s.Tries <= 0 {
		s.Tries = DefaultTries
	}
	if s.Greedy == "" {
		s.Greedy = "dsatur-incremental"
	}
	if s.Pollinator == "" {
		s.Pollinator = pollinate.Default
	}
	if s.PopulationSize <= 0 {
		s.PopulationSize = search.DefaultPopulationSize
	}
	if s.MaxGenerations <= 0 {
		s.MaxGenerations = search.DefaultMaxGenerations
	}
	if s.Parameters == (search.Parameters{}) {
		s.Parameters = search.StandardParameters()
	}
	return s
}

// Validate checks the suite after defaults have been applied.
func (s Suite) Validate() error {
	if len(s.Instances) == 0 {
		return errors.New(errors.ErrCodeInvalidSuite, "suite %q has no instances", s.Name)
	}
	seen := make(map[string]bool, len(s.Instances))
	for i, inst := range s.Instances {
		if inst.Name == "" {
			return errors.New(errors.ErrCodeInvalidSuite, "instance %d has no name", i+1)
		}
		if seen[inst.Name] {
			return errors.New(errors.ErrCodeInvalidSuite, "duplicate instance %q", inst.Name)
		}
		seen[inst.Name] = true
		if inst.Chromatic < 0 {
			return errors.New(errors.ErrCodeInvalidSuite, "instance %q: chromatic must be non-negative", inst.Name)
		}
	}
	if _, ok := greedy.Lookup(s.Greedy); !ok {
		return errors.New(errors.ErrCodeInvalidSuite, "unknown greedy constructor %q", s.Greedy)
	}
	if _, err := pollinate.Lookup(s.Pollinator); err != nil {
		return err
	}
	return s.Parameters.Validate()
}

// Select returns a copy restricted to the named instances, in suite order.
func (s Suite) Select(names ...string) (Suite, error) {
	if len(names) == 0 {
		return s, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := s
	out.Instances = nil
	for _, inst := range s.Instances {
		if want[inst.Name] {
			out.Instances = append(out.Instances, inst)
			delete(want, inst.Name)
		}
	}
	for n := range want {
		return Suite{}, errors.New(errors.ErrCodeInvalidSuite, "suite %q has no instance %q", s.Name, n)
	}
	return out, nil
}

// InstancePath returns the graph file of inst.
func (s Suite) InstancePath(inst Instance) string {
	if inst.Path != "" {
		if filepath.IsAbs(inst.Path) || s.GraphDir == "" {
			return inst.Path
		}
		return filepath.Join(s.GraphDir, inst.Path)
	}
	return filepath.Join(s.GraphDir, inst.Name+".col")
}
