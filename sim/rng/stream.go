package rng

import "hash/fnv"

// Standard stream names used by the kernel (§4.2). Stream names for
// per-class and per-replication streams are produced by the helper
// functions below rather than hardcoded, since they're parameterized by
// index.
const (
	// StreamMain is consumed by distribution sampling inside the kernel
	// (service times, routing draws) unless a scope-specific stream is
	// supplied.
	StreamMain = "main"
)

// StreamArrivals returns the stream name for an entity class's arrival
// generator, keyed by the class's index in the model description.
func StreamArrivals(classIndex int) string {
	return streamName("arrivals", classIndex)
}

// StreamReplication returns the stream name for replication n's RNG
// derivation (§5: each replication gets its own stream manager seeded by
// base_seed XOR hash("replication-<n>")).
func StreamReplication(n int) string {
	return "replication-" + itoa(n)
}

// StreamProcess returns the stream name for a named process's private
// randomness (e.g. conditional-rule evaluation extensions).
func StreamProcess(name string) string {
	return "process-" + name
}

func streamName(prefix string, idx int) string {
	return prefix + "_" + itoa(idx)
}

// itoa avoids importing strconv for this one call site's worth of use,
// matching how small a helper this needs to be.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// StreamManager maps string stream ids to independent MT19937 generators,
// each seeded by hash(stream_id) XOR base_seed. The same (base_seed,
// stream_id) pair always produces the identical sequence across runs —
// this is the reproducibility contract in §4.2.
//
// Not safe for concurrent use; the kernel that owns a StreamManager is
// itself single-threaded (§5).
type StreamManager struct {
	baseSeed int64
	streams  map[string]*MT19937
}

// NewStreamManager creates a StreamManager rooted at baseSeed.
func NewStreamManager(baseSeed int64) *StreamManager {
	return &StreamManager{
		baseSeed: baseSeed,
		streams:  make(map[string]*MT19937),
	}
}

// Stream returns the named generator, creating and caching it on first
// use. Never returns nil.
func (s *StreamManager) Stream(name string) *MT19937 {
	if g, ok := s.streams[name]; ok {
		return g
	}
	seed := s.baseSeed ^ fnv1a64(name)
	g := NewMT19937FromSeed(seed)
	s.streams[name] = g
	return g
}

// BaseSeed returns the seed this manager was constructed with.
func (s *StreamManager) BaseSeed() int64 {
	return s.baseSeed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string, used to
// derive per-stream seeds. Grounded on the teacher's stream-derivation
// convention (sim/rng.go: PartitionedRNG.ForSubsystem).
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
