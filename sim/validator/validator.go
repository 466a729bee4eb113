// Package validator is an executable correctness oracle: it runs the
// kernel against known queueing-theory closed forms (M/M/1, M/M/c via
// Erlang-C) and reports whether recovered statistics match theory within a
// declared tolerance (§4.8).
package validator

import (
	"fmt"
	"math"

	"github.com/queuesim/desim/sim/engine"
)

// Scenario parameterizes one analytical-oracle run.
type Scenario struct {
	Name string

	ArrivalRatePerHour float64
	ServiceRatePerHour float64
	Servers            int // 1 for M/M/1, >1 for M/M/c

	RunHours    float64
	WarmupHours float64

	// ToleranceFraction is the maximum accepted relative error against
	// theory (e.g. 0.05 for 5%).
	ToleranceFraction float64
}

// Theory is the closed-form prediction for a scenario (§4.8).
type Theory struct {
	Rho        float64
	L          float64
	Lq         float64
	WMinutes   float64
	WqMinutes  float64
	Throughput float64
}

// Observed is what the kernel actually produced, read back from its
// statistics summary.
type Observed struct {
	L          float64
	Lq         float64
	WMinutes   float64
	WqMinutes  float64
	Throughput float64
}

// MetricResult is the pass/fail verdict for one metric.
type MetricResult struct {
	Metric        string
	Theoretical   float64
	Observed      float64
	RelativeError float64
	Passed        bool
}

// EvaluationResult bundles every metric's verdict for one scenario run.
type EvaluationResult struct {
	Scenario Scenario
	Theory   Theory
	Observed Observed
	Metrics  []MetricResult
}

// AllPassed reports whether every metric in the evaluation passed.
func (r EvaluationResult) AllPassed() bool {
	for _, m := range r.Metrics {
		if !m.Passed {
			return false
		}
	}
	return true
}

// ComputeTheory evaluates the closed-form M/M/1 or M/M/c formulas for a
// scenario (§4.8).
func ComputeTheory(s Scenario) Theory {
	lambda := s.ArrivalRatePerHour / 60 // per minute
	mu := s.ServiceRatePerHour / 60     // per minute

	if s.Servers <= 1 {
		rho := lambda / mu
		l := rho / (1 - rho)
		lq := rho * rho / (1 - rho)
		w := 1 / (mu - lambda)
		wq := rho / (mu - lambda)
		return Theory{Rho: rho, L: l, Lq: lq, WMinutes: w, WqMinutes: wq, Throughput: lambda * 60}
	}

	c := float64(s.Servers)
	a := lambda / mu
	rho := a / c
	erlangC := erlangCProbability(s.Servers, a)
	lq := erlangC * rho / (1 - rho)
	wq := lq / lambda
	w := wq + 1/mu
	l := lambda * w
	return Theory{Rho: rho, L: l, Lq: lq, WMinutes: w, WqMinutes: wq, Throughput: lambda * 60}
}

// erlangCProbability computes Erlang's C formula, the probability that an
// arriving customer must wait, for c servers and offered traffic a.
func erlangCProbability(c int, a float64) float64 {
	sum := 0.0
	term := 1.0 // a^0 / 0!
	for k := 0; k < c; k++ {
		if k > 0 {
			term *= a / float64(k)
		}
		sum += term
	}
	// term currently holds a^(c-1)/(c-1)!; extend to a^c/c!
	cTerm := term * a / float64(c)
	rho := a / float64(c)
	numerator := cTerm / (1 - rho)
	return numerator / (sum + numerator)
}

// Run builds and executes the scenario against the engine kernel, then
// evaluates each metric against theory.
func Run(s Scenario) (EvaluationResult, error) {
	theory := ComputeTheory(s)

	k := engine.NewKernel(1)
	k.AddResource("server", "server", s.Servers)
	flow := engine.ProcessFlow{
		"serve": &engine.Stage{
			ID:          "serve",
			ResourceID:  "server",
			ServiceDist: &engine.Distribution{Kind: engine.DistExponential, Mean: 60 / s.ServiceRatePerHour},
			Rules:       []engine.RoutingRule{{Next: engine.ExitStage}},
		},
	}
	k.AddProcessFlow("job", flow)
	k.SetOnServiceComplete(engine.NewRouter(map[string]engine.ProcessFlow{"job": flow}).Complete)
	k.AddArrivalSource(&engine.HomogeneousPoissonSource{
		ClassName:       "job",
		RatePerMinute:   s.ArrivalRatePerHour / 60,
		StreamName:      "arrivals_0",
		FirstStageID:    "serve",
		FirstResourceID: "server",
		ServiceDist:     flow["serve"].ServiceDist,
	}, s.RunHours*60)

	if err := k.Run(s.RunHours*60, s.WarmupHours*60); err != nil {
		return EvaluationResult{}, fmt.Errorf("validator scenario %s: %w", s.Name, err)
	}

	summary := k.GetStatistics()
	elapsedPostWarmup := s.RunHours*60 - s.WarmupHours*60
	throughputPerHour := float64(summary.EntitiesDepartedPostWarmup) / elapsedPostWarmup * 60
	observed := Observed{
		L:          summary.TimeSeries["entities_in_system"].TimeAverage,
		Lq:         summary.Resources["server"].QueueLength.TimeAverage,
		WMinutes:   summary.Tallies["entity_cycle_time"].Mean,
		WqMinutes:  summary.Tallies["entity_wait_time"].Mean,
		Throughput: throughputPerHour,
	}

	tolerance := s.ToleranceFraction
	if tolerance <= 0 {
		tolerance = 0.05
	}

	metrics := []MetricResult{
		evaluate("L", theory.L, observed.L, tolerance),
		evaluate("Lq", theory.Lq, observed.Lq, tolerance),
		evaluate("W", theory.WMinutes, observed.WMinutes, tolerance),
		evaluate("Wq", theory.WqMinutes, observed.WqMinutes, tolerance),
		evaluate("throughput", theory.Throughput, observed.Throughput, tolerance),
	}

	return EvaluationResult{Scenario: s, Theory: theory, Observed: observed, Metrics: metrics}, nil
}

func evaluate(name string, theoretical, observed, tolerance float64) MetricResult {
	var relErr float64
	if theoretical != 0 {
		relErr = math.Abs(observed-theoretical) / theoretical
	} else {
		relErr = math.Abs(observed)
	}
	return MetricResult{
		Metric:        name,
		Theoretical:   theoretical,
		Observed:      observed,
		RelativeError: relErr,
		Passed:        relErr <= tolerance,
	}
}
