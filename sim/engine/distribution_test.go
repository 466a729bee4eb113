package engine

import (
	"math"
	"testing"

	"github.com/queuesim/desim/sim/rng"
)

func TestDistribution_ConstantAlwaysReturnsMean(t *testing.T) {
	d := &Distribution{Kind: DistConstant, Mean: 4.2}
	g := rng.NewMT19937(1)
	for i := 0; i < 5; i++ {
		v, err := d.Sample(g)
		if err != nil || v != 4.2 {
			t.Fatalf("constant sample = %v, %v; want 4.2, nil", v, err)
		}
	}
}

func TestDistribution_NormalFloorsAtZero(t *testing.T) {
	d := &Distribution{Kind: DistNormal, Mean: -100, StdDev: 1}
	g := rng.NewMT19937(1)
	for i := 0; i < 50; i++ {
		v, err := d.Sample(g)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < 0 {
			t.Fatalf("normal sample %v should have been floored at 0", v)
		}
	}
}

func TestDistribution_UnknownKindErrors(t *testing.T) {
	d := &Distribution{Kind: "bogus"}
	g := rng.NewMT19937(1)
	if _, err := d.Sample(g); err == nil {
		t.Fatal("expected an error for an unknown distribution kind")
	}
}

func TestDistribution_NilDistributionErrors(t *testing.T) {
	var d *Distribution
	g := rng.NewMT19937(1)
	if _, err := d.Sample(g); err == nil {
		t.Fatal("expected an error sampling a nil distribution")
	}
}

func TestDistribution_ExponentialMeanApproximatesTarget(t *testing.T) {
	d := &Distribution{Kind: DistExponential, Mean: 2.0}
	g := rng.NewMT19937(123)
	sum := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		v, _ := d.Sample(g)
		sum += v
	}
	mean := sum / n
	if math.Abs(mean-2.0) > 0.1 {
		t.Fatalf("sampled mean %v too far from target 2.0", mean)
	}
}
