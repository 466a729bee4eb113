package stats

import "testing"

func TestWelchWarmup_DetectsStabilizationPoint(t *testing.T) {
	// Two replications that start high (transient) and settle to a
	// near-constant steady state. The minimal-variance window should land
	// well past the transient.
	transient := func() []float64 {
		out := make([]float64, 40)
		for i := range out {
			if i < 10 {
				out[i] = float64(20 - i) // decaying transient
			} else {
				out[i] = 10.0
			}
		}
		return out
	}
	reps := [][]float64{transient(), transient()}

	cutoff, avg := WelchWarmup(reps, 2, 5)
	if len(avg) != 40 {
		t.Fatalf("averaged series length = %d, want 40", len(avg))
	}
	if cutoff < 10 {
		t.Errorf("cutoff = %d, expected it to land at/after the transient settles (>=10)", cutoff)
	}
}

func TestWelchWarmup_SingleReplication(t *testing.T) {
	series := make([]float64, 20)
	for i := range series {
		series[i] = float64(i % 3)
	}
	cutoff, avg := WelchWarmup([][]float64{series}, 1, 3)
	if cutoff < 0 || cutoff >= len(avg) {
		t.Errorf("cutoff %d out of range for series length %d", cutoff, len(avg))
	}
}

func TestWelchWarmup_PanicsOnUnequalLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unequal-length replications")
		}
	}()
	WelchWarmup([][]float64{{1, 2, 3}, {1, 2}}, 1, 1)
}

func TestWelchWarmup_EmptyReplicationsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero replications")
		}
	}()
	WelchWarmup(nil, 1, 1)
}
