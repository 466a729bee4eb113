package rng

import (
	"math"
	"testing"
)

func TestExponential_PositiveAndMeanApprox(t *testing.T) {
	g := NewMT19937(1)
	sum := 0.0
	const n = 200000
	for i := 0; i < n; i++ {
		v := Exponential(g, 10.0)
		if v < 0 {
			t.Fatalf("Exponential produced negative value %v", v)
		}
		sum += v
	}
	mean := sum / n
	if math.Abs(mean-10.0) > 0.2 {
		t.Errorf("sample mean %v too far from 10.0", mean)
	}
}

func TestTriangular_WithinBounds(t *testing.T) {
	g := NewMT19937(2)
	for i := 0; i < 10000; i++ {
		v := Triangular(g, 1, 3, 10)
		if v < 1 || v > 10 {
			t.Fatalf("Triangular(1,3,10) = %v, out of bounds", v)
		}
	}
}

func TestEmpirical_RespectsProbabilities(t *testing.T) {
	g := NewMT19937(3)
	values := []float64{1, 2, 3}
	probs := []float64{0.2, 0.3, 0.5}
	counts := map[float64]int{}
	const n = 100000
	for i := 0; i < n; i++ {
		v, err := Empirical(g, values, probs)
		if err != nil {
			t.Fatal(err)
		}
		counts[v]++
	}
	got := float64(counts[3]) / n
	if math.Abs(got-0.5) > 0.02 {
		t.Errorf("P(value=3) = %v, want ~0.5", got)
	}
}

func TestEmpirical_MismatchedLengths(t *testing.T) {
	g := NewMT19937(1)
	_, err := Empirical(g, []float64{1, 2}, []float64{1.0})
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestEmpirical_ProbabilitiesMustSumToOne(t *testing.T) {
	g := NewMT19937(1)
	_, err := Empirical(g, []float64{1, 2}, []float64{0.5, 0.6})
	if err == nil {
		t.Fatal("expected error when probabilities don't sum to 1")
	}
}

func TestAntithetic(t *testing.T) {
	u, v := Antithetic(0.3)
	if u != 0.3 || v != 0.7 {
		t.Errorf("Antithetic(0.3) = (%v, %v)", u, v)
	}
}

func TestSortedEmpiricalCDF_MatchesEmpirical(t *testing.T) {
	g1 := NewMT19937(9)
	g2 := NewMT19937(9)
	table, err := NewSortedEmpiricalCDF([]float64{5, 6, 7}, []float64{0.1, 0.1, 0.8})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		a := table.Sample(g1)
		b, _ := Empirical(g2, []float64{5, 6, 7}, []float64{0.1, 0.1, 0.8})
		if a != b {
			t.Fatalf("draw %d: table=%v direct=%v", i, a, b)
		}
	}
}
