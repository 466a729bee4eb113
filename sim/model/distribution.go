package model

import (
	"math"
	"strings"

	"github.com/queuesim/desim/sim/engine"
)

// normalize lowercases and strips spaces/underscores/hyphens, so the
// compiler can match synonyms case- and separator-insensitively (§4.5, §6).
func normalize(s string) string {
	s = strings.ToLower(s)
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return replacer.Replace(s)
}

var distKindSynonyms = map[string]engine.DistKind{
	"constant":      engine.DistConstant,
	"fixed":         engine.DistConstant,
	"deterministic": engine.DistConstant,
	"exponential":   engine.DistExponential,
	"exp":           engine.DistExponential,
	"uniform":       engine.DistUniform,
	"unif":          engine.DistUniform,
	"triangular":    engine.DistTriangular,
	"triang":        engine.DistTriangular,
	"triangle":      engine.DistTriangular,
	"normal":        engine.DistNormal,
	"gaussian":      engine.DistNormal,
	"norm":          engine.DistNormal,
	"empirical":     engine.DistEmpirical,
	"discrete":      engine.DistEmpirical,
	"custom":        engine.DistEmpirical,
}

// paramAliases maps every accepted parameter key spelling to the canonical
// name used below.
var paramAliases = map[string]string{
	"value": "value", "mean": "mean", "rate": "rate",
	"min": "min", "minimum": "min", "low": "min", "lower": "min",
	"max": "max", "maximum": "max", "high": "max", "upper": "max",
	"mode": "mode", "likely": "mode", "peak": "mode",
	"stddev": "stddev", "std": "stddev", "sigma": "stddev", "std_dev": "stddev",
}

func canonicalParams(raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if canon, ok := paramAliases[normalize(k)]; ok {
			out[canon] = v
		}
	}
	return out
}

// compileDistribution converts a YAML Dist record into an engine
// Distribution, collecting every validation finding rather than stopping
// at the first one (§7 ModelError: triangular min<=mode<=max, uniform
// min<max, normal std_dev>0, unknown type, mismatched empirical lengths).
func compileDistribution(field string, d Dist, verr *ValidationError) *engine.Distribution {
	kind, ok := distKindSynonyms[normalize(d.Type)]
	if !ok {
		verr.add(field+".type", "unknown distribution type "+d.Type)
		return nil
	}
	p := canonicalParams(d.Parameters)

	switch kind {
	case engine.DistConstant:
		return &engine.Distribution{Kind: kind, Mean: p["value"]}
	case engine.DistExponential:
		mean := p["mean"]
		if mean == 0 && p["rate"] != 0 {
			mean = 1.0 / p["rate"]
		}
		if mean <= 0 {
			verr.add(field, "exponential distribution requires a positive mean or rate")
		}
		return &engine.Distribution{Kind: kind, Mean: mean}
	case engine.DistUniform:
		lo, hi := p["min"], p["max"]
		if !(lo < hi) {
			verr.add(field, "uniform distribution requires min < max")
		}
		return &engine.Distribution{Kind: kind, Min: lo, Max: hi}
	case engine.DistTriangular:
		lo, mode, hi := p["min"], p["mode"], p["max"]
		if !(lo <= mode && mode <= hi) {
			verr.add(field, "triangular distribution requires min <= mode <= max")
		}
		return &engine.Distribution{Kind: kind, Min: lo, Mode: mode, Max: hi}
	case engine.DistNormal:
		std := p["stddev"]
		if std <= 0 {
			verr.add(field, "normal distribution requires std_dev > 0")
		}
		return &engine.Distribution{Kind: kind, Mean: p["mean"], StdDev: std}
	case engine.DistEmpirical:
		if len(d.Values) != len(d.Probs) {
			verr.add(field, "empirical distribution values/probabilities length mismatch")
			return nil
		}
		sum := 0.0
		for _, pr := range d.Probs {
			sum += pr
		}
		if math.Abs(sum-1.0) > 1e-4 {
			verr.add(field, "empirical distribution probabilities must sum to 1 (tolerance 1e-4)")
		}
		return &engine.Distribution{Kind: kind, EmpiricalValues: append([]float64(nil), d.Values...), EmpiricalProbs: append([]float64(nil), d.Probs...)}
	}
	return nil
}

// ratePerMinute normalizes a rate + rate_unit pair into an equivalent
// per-minute rate (§6 rate units).
func ratePerMinute(rate float64, unit string) float64 {
	switch normalize(unit) {
	case "persecond":
		return rate * 60
	case "perminute", "":
		return rate
	case "perhour":
		return rate / 60
	case "perday":
		return rate / (60 * 24)
	case "perweek":
		return rate / (60 * 24 * 7)
	default:
		return rate
	}
}
