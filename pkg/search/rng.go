package search

import "math/rand/v2"

// deriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer so neighboring stream ids give unrelated seeds.
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// slotRNG returns the random stream owned by one population slot while the
// search targets k colors.
func slotRNG(seed uint64, k, slot int) *rand.Rand {
	s1 := deriveSeed(seed, uint64(k)<<32|uint64(uint32(slot)))
	s2 := deriveSeed(s1, 0xda942042e4dd58b5)
	return rand.New(rand.NewPCG(s1, s2))
}

// slotRNGs returns one stream per slot.
func slotRNGs(seed uint64, k, n int) []*rand.Rand {
	rngs := make([]*rand.Rand, n)
	for i := range rngs {
		rngs[i] = slotRNG(seed, k, i)
	}
	return rngs
}

// randomSeed returns a non-zero seed from the runtime's generator.
func randomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
