package cache

// ResultKeyOpts lists everything that changes the outcome of one search run.
type ResultKeyOpts struct {
	Greedy         string  `json:"greedy"`
	Pollinator     string  `json:"pollinator"`
	Lambda         float64 `json:"lambda"`
	SwitchP        float64 `json:"switch_p"`
	LifetimeLimit  int     `json:"lifetime_limit"`
	PopulationSize int     `json:"population_size"`
	MaxGenerations int     `json:"max_generations"`
	Stop           int     `json:"stop"`
	Seed           uint64  `json:"seed"`
	Try            int     `json:"try"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies one search run on the graph with the given hash.
	ResultKey(graphHash string, opts ResultKeyOpts) string

	// BoundKey identifies a bound (clique, exact) computed for a graph.
	BoundKey(graphHash, kind string) string
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements [Keyer].
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return hashKey("result", graphHash, opts)
}

// BoundKey implements [Keyer].
func (DefaultKeyer) BoundKey(graphHash, kind string) string {
	return "bound:" + kind + ":" + graphHash
}

// ScopedKeyer prefixes every key of an inner keyer, giving each suite or
// sweep its own namespace in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey implements [Keyer].
func (k *ScopedKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(graphHash, opts)
}

// BoundKey implements [Keyer].
func (k *ScopedKeyer) BoundKey(graphHash, kind string) string {
	return k.prefix + k.inner.BoundKey(graphHash, kind)
}
