// Package rng implements the simulation's random number subsystem: a
// reference-faithful Mersenne Twister (MT19937) generator plus a stream
// manager that hands out independent, deterministically-seeded generators
// keyed by name.
package rng

// MT19937 parameters per Matsumoto & Nishimura (1998).
const (
	n          = 624
	m          = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	initialSeed = 19650218
)

// MT19937 is a Mersenne Twister pseudo-random generator with 624 words of
// state. Not safe for concurrent use — each stream owns exactly one
// generator and the kernel is single-threaded (see §5 of the design).
type MT19937 struct {
	state [n]uint32
	index int
}

// NewMT19937 creates a generator seeded from a single 32-bit value, using
// the reference init_genrand procedure.
func NewMT19937(seed uint32) *MT19937 {
	g := &MT19937{}
	g.seedScalar(seed)
	return g
}

// NewMT19937FromSeed creates a generator from an arbitrary int64 seed, by
// splitting it into two 32-bit words and running the reference
// init_by_array procedure. This is how the stream manager seeds every
// named stream, since stream seeds are derived as int64 XOR hashes.
func NewMT19937FromSeed(seed int64) *MT19937 {
	g := &MT19937{}
	key := [2]uint32{uint32(seed), uint32(seed >> 32)}
	g.seedArray(key[:])
	return g
}

func (g *MT19937) seedScalar(seed uint32) {
	g.state[0] = seed
	for i := 1; i < n; i++ {
		prev := g.state[i-1]
		g.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	g.index = n
}

// seedArray implements init_by_array from the reference implementation,
// used to seed from a key longer than 32 bits.
func (g *MT19937) seedArray(key []uint32) {
	g.seedScalar(initialSeed)
	i, j := 1, 0
	k := n
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := g.state[i-1]
		g.state[i] = (g.state[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			g.state[0] = g.state[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		prev := g.state[i-1]
		g.state[i] = (g.state[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			g.state[0] = g.state[n-1]
			i = 1
		}
	}
	g.state[0] = upperMask
	g.index = n
}

// twist regenerates the full 624-word state block.
func (g *MT19937) twist() {
	for i := 0; i < n; i++ {
		y := (g.state[i] & upperMask) | (g.state[(i+1)%n] & lowerMask)
		next := g.state[(i+m)%n] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		g.state[i] = next
	}
	g.index = 0
}

// Uint32 returns the next tempered 32-bit output.
func (g *MT19937) Uint32() uint32 {
	if g.index >= n {
		g.twist()
	}
	y := g.state[g.index]
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	g.index++
	return y
}

// Float64 returns a uniform value in [0, 1), using 32 bits of precision.
func (g *MT19937) Float64() float64 {
	return float64(g.Uint32()) * (1.0 / 4294967296.0)
}

// Float64Closed returns a uniform value in [0, 1] with 53-bit precision,
// combining two draws per the reference genrand_res53.
func (g *MT19937) Float64Closed() float64 {
	a := g.Uint32() >> 5 // 27 bits
	b := g.Uint32() >> 6 // 26 bits
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Float64Open returns a uniform value strictly in (0, 1).
func (g *MT19937) Float64Open() float64 {
	return (float64(g.Uint32()) + 0.5) * (1.0 / 4294967296.0)
}
