package core

// RNG is a deterministic xorshift64 generator whose whole state is one word,
// so snapshots can record it.
type RNG struct {
	state uint64
}

// NewRNG creates a generator. A zero seed is replaced by a fixed constant.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &RNG{state: seed}
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n). n <= 0 returns 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is positive
}

// State returns the current generator state.
func (r *RNG) State() uint64 {
	return r.state
}
