package engine

import "testing"

func TestHomogeneousPoissonSource_RespectsMaxArrivals(t *testing.T) {
	k := NewKernel(1)
	k.AddResource("server", "server", 1)
	src := &HomogeneousPoissonSource{
		ClassName:       "job",
		RatePerMinute:   10,
		StreamName:      "arrivals_job",
		FirstStageID:    "",
		FirstResourceID: "",
		MaxArrivals:     5,
	}
	k.AddArrivalSource(src, 10000)
	k.Run(10000, 0)
	if k.GetStatistics().EntitiesCreated != 5 {
		t.Fatalf("entities created = %d, want 5", k.GetStatistics().EntitiesCreated)
	}
}

func TestHomogeneousPoissonSource_NonPositiveRateProducesNoArrivalsAndDiagnostic(t *testing.T) {
	k := NewKernel(1)
	src := &HomogeneousPoissonSource{
		ClassName:     "job",
		RatePerMinute: 0,
		StreamName:    "arrivals_job",
	}
	k.AddArrivalSource(src, 100)
	if err := k.Run(100, 0); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if k.GetStatistics().EntitiesCreated != 0 {
		t.Fatal("expected no arrivals for a non-positive rate")
	}
	foundDiag := false
	for _, d := range k.Diagnostics() {
		if d.Kind == "ArrivalUnsupported" {
			foundDiag = true
		}
	}
	if !foundDiag {
		t.Fatal("expected an ArrivalUnsupported diagnostic")
	}
}

func TestNonHomogeneousPoissonSource_GeneratesArrivalsWithGappedWindows(t *testing.T) {
	k := NewKernel(1)
	src := &NonHomogeneousPoissonSource{
		ClassName:  "job",
		StreamName: "arrivals_job",
		Windows: []RateWindow{
			{StartMin: 0, EndMin: 10, RatePerHour: 600}, // 10/min
			{StartMin: 50, EndMin: 60, RatePerHour: 600},
		},
	}
	k.AddArrivalSource(src, 60)
	k.Run(60, 0)
	stats := k.GetStatistics()
	if stats.EntitiesCreated == 0 {
		t.Fatal("expected arrivals to be generated within the active windows")
	}
}

func TestScheduledSource_OnlySchedulesWithinHorizon(t *testing.T) {
	k := NewKernel(1)
	src := &ScheduledSource{
		ClassName: "job",
		Times:     []float64{1, 2, 100},
	}
	k.AddArrivalSource(src, 10)
	k.Run(10, 0)
	if k.GetStatistics().EntitiesCreated != 2 {
		t.Fatalf("entities created = %d, want 2 (one scheduled time exceeds the horizon)", k.GetStatistics().EntitiesCreated)
	}
}
