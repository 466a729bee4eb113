package rng

import "testing"

func TestMT19937_KnownSeedFirstValues(t *testing.T) {
	// Reference MT19937 seeded with 5489 via init_genrand is a well-known
	// fixture: its first tempered outputs are 3499211612, 581869302,
	// 3890346734. Pin those, then check that two same-seed generators agree.
	ref := NewMT19937(5489)
	for i, want := range []uint32{3499211612, 581869302, 3890346734} {
		if got := ref.Uint32(); got != want {
			t.Fatalf("draw %d: got %d, want reference value %d", i, got, want)
		}
	}
	g1 := NewMT19937(5489)
	g2 := NewMT19937(5489)
	for i := 0; i < 1000; i++ {
		a, b := g1.Uint32(), g2.Uint32()
		if a != b {
			t.Fatalf("draw %d: same seed produced different output: %d vs %d", i, a, b)
		}
	}
}

func TestMT19937_DifferentSeedsDiverge(t *testing.T) {
	g1 := NewMT19937(1)
	g2 := NewMT19937(2)
	same := 0
	for i := 0; i < 100; i++ {
		if g1.Uint32() == g2.Uint32() {
			same++
		}
	}
	if same > 2 {
		t.Fatalf("different seeds produced %d/100 identical draws, expected near-zero collisions", same)
	}
}

func TestMT19937_Float64Range(t *testing.T) {
	g := NewMT19937(42)
	for i := 0; i < 10000; i++ {
		v := g.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, want in [0,1)", v)
		}
	}
}

func TestMT19937_Float64ClosedRange(t *testing.T) {
	g := NewMT19937(42)
	for i := 0; i < 10000; i++ {
		v := g.Float64Closed()
		if v < 0 || v > 1 {
			t.Fatalf("Float64Closed() = %v, want in [0,1]", v)
		}
	}
}

func TestMT19937_Float64OpenRange(t *testing.T) {
	g := NewMT19937(42)
	for i := 0; i < 10000; i++ {
		v := g.Float64Open()
		if v <= 0 || v >= 1 {
			t.Fatalf("Float64Open() = %v, want in (0,1)", v)
		}
	}
}

func TestMT19937FromSeed_Deterministic(t *testing.T) {
	g1 := NewMT19937FromSeed(987654321)
	g2 := NewMT19937FromSeed(987654321)
	for i := 0; i < 50; i++ {
		if g1.Float64() != g2.Float64() {
			t.Fatalf("draw %d: same int64 seed diverged", i)
		}
	}
}

func TestMT19937FromSeed_NegativeSeed(t *testing.T) {
	g1 := NewMT19937FromSeed(-42)
	g2 := NewMT19937FromSeed(-42)
	for i := 0; i < 50; i++ {
		if g1.Uint32() != g2.Uint32() {
			t.Fatalf("draw %d: negative seed not reproducible", i)
		}
	}
}
