package core

import (
	"math"
	"slices"

	"emistat/schema"
)

// forecastBoost maps each activation kind to its slope multiplier during
// extrapolation. Distinct from selectorBoost on purpose.
var forecastBoost = map[schema.ActivationKind]float64{
	schema.ReluActivation:    1.05,
	schema.TanhActivation:    1.02,
	schema.SigmoidActivation: 0.98,
}

// Forecast produces exactly horizonYears predicted points at the years
// following the last historical year. Prediction is autoregressive: each
// predicted point is appended to a rolling copy of the history before the
// next step, so later baselines can include earlier predictions. An empty
// history yields an empty result. The function never fails; degenerate
// inputs fall back to a zero slope.
func Forecast(history []schema.SeriesPoint, horizonYears int, cfg schema.Configuration, seed int) []schema.SeriesPoint {
	if len(history) == 0 || horizonYears <= 0 {
		return nil
	}

	rolling := slices.Clone(history)
	lastYear := history[len(history)-1].Year

	out := make([]schema.SeriesPoint, 0, horizonYears)
	for i := 0; i < horizonYears; i++ {
		point := schema.SeriesPoint{
			Year:  lastYear + i + 1,
			Value: predictNext(rolling, cfg, seed+i),
		}
		rolling = append(rolling, point)
		out = append(out, point)
	}
	return out
}

// predictNext computes one extrapolation step over the rolling series.
// rolling must be non-empty and ascending by year.
func predictNext(rolling []schema.SeriesPoint, cfg schema.Configuration, stepSeed int) float64 {
	n := len(rolling)

	// Baseline is the mean of the trailing lookback window.
	w := min(cfg.Lookback, n)
	if w < 1 {
		w = 1
	}
	var sum float64
	for _, p := range rolling[n-w:] {
		sum += p.Value
	}
	baseline := sum / float64(w)

	// prev anchors the slope just before the window; not necessarily
	// adjacent to the last point.
	last := rolling[n-1]
	prev := rolling[max(0, n-cfg.Lookback-1)]

	// Duplicate years would make the delta zero; treat that as flat
	// rather than dividing by zero.
	var slope float64
	if n > 1 && last.Year != prev.Year {
		slope = (baseline - prev.Value) / float64(last.Year-prev.Year)
	}

	// Bound extrapolation blow-up.
	limit := 0.5 * baseline
	if slope > limit {
		slope = limit
	} else if slope < -limit {
		slope = -limit
	}

	boost := forecastBoost[cfg.Activation]
	jitter := float64((stepSeed%5)-2) * 0.01 * baseline
	noise := 0.02 * baseline // fixed downward bias, not randomness

	raw := baseline + slope*boost - noise + jitter
	return math.Round(math.Max(0, raw))
}
