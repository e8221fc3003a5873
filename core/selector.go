package core

import (
	"fmt"
	"math"

	"emistat/schema"
)

// selectorBoost maps each activation kind to its multiplicative loss factor
// during candidate scoring. Intentionally distinct from forecastBoost: the
// two tables belong to different scoring contexts.
var selectorBoost = map[schema.ActivationKind]float64{
	schema.ReluActivation:    0.95,
	schema.TanhActivation:    0.98,
	schema.SigmoidActivation: 1.03,
}

// Grid is the candidate space enumerated by Select. The nested enumeration
// order is fixed: lookback, then units1, then units2, then activation.
type Grid struct {
	Lookbacks   []int
	Units1      []int
	Units2      []int
	Activations []schema.ActivationKind
}

// DefaultGrid returns the standard 5x4x4x3 candidate grid (240 combinations).
func DefaultGrid() Grid {
	return Grid{
		Lookbacks:   []int{2, 3, 4, 5, 6},
		Units1:      []int{16, 32, 64, 128},
		Units2:      []int{0, 16, 32, 64},
		Activations: schema.AllActivationKinds,
	}
}

// Size returns the number of candidates the grid enumerates.
func (g Grid) Size() int {
	return len(g.Lookbacks) * len(g.Units1) * len(g.Units2) * len(g.Activations)
}

// candidateScores holds the numeric losses for one candidate. Selection
// compares these values; the formatted strings exist only for display.
type candidateScores struct {
	trainingLoss   float64
	validationLoss float64
	mae            float64
}

// scoreCandidate computes the closed-form synthetic losses for a candidate.
// subSeed varies the jitter between repeated training invocations; it is a
// plain counter, not a random source.
func scoreCandidate(lookback, units1, units2 int, activation schema.ActivationKind, historyLen, subSeed int) candidateScores {
	neuronsScore := float64(units1+units2) / 200.0
	boost := selectorBoost[activation]

	baseLoss := 0.01 + 0.002*math.Max(0, float64(lookback-3)) + 0.0015*neuronsScore
	jitter := float64((subSeed%11)-5) * 0.0006

	trainingLoss := math.Max(0.001, baseLoss*boost+jitter)
	validationLoss := math.Max(0.001, trainingLoss+0.0025+math.Abs(jitter)*0.5)
	mae := 0.05 + float64(lookback)/50.0 + (1.0/math.Max(1, float64(historyLen)))*0.1

	return candidateScores{
		trainingLoss:   trainingLoss,
		validationLoss: validationLoss,
		mae:            mae,
	}
}

// formatMetrics renders the numeric scores to their storage precision:
// losses to 4 decimal places, mean absolute error to 3.
func formatMetrics(s candidateScores) schema.SyntheticMetrics {
	return schema.SyntheticMetrics{
		TrainingLoss:      fmt.Sprintf("%.4f", s.trainingLoss),
		ValidationLoss:    fmt.Sprintf("%.4f", s.validationLoss),
		MeanAbsoluteError: fmt.Sprintf("%.3f", s.mae),
	}
}

// optimizerFor derives the descriptive optimizer label for a candidate.
// The label has no computational effect.
func optimizerFor(lookback, units1, units2, seed int) string {
	n := len(schema.OptimizerNames)
	idx := (lookback + units1 + units2 + seed) % n
	if idx < 0 {
		idx += n
	}
	return schema.OptimizerNames[idx]
}

// Select enumerates the default candidate grid, scores every combination
// exactly once, and returns the candidate with the strictly lowest numeric
// validation loss together with its formatted metrics. Ties resolve to the
// first-enumerated candidate. The returned bool is false only when the grid
// is empty. An empty history is permitted; the formulas guard division by
// zero and degrade gracefully.
func Select(history []schema.SeriesPoint, seed int) (schema.Configuration, schema.SyntheticMetrics, bool) {
	return SelectWithGrid(DefaultGrid(), history, seed)
}

// SelectWithGrid is Select over a caller-supplied candidate grid. Route
// variants that truncate the activation set express that here instead of
// duplicating the scoring loop.
func SelectWithGrid(grid Grid, history []schema.SeriesPoint, seed int) (schema.Configuration, schema.SyntheticMetrics, bool) {
	historyLen := len(history)

	var (
		found bool
		best  schema.Configuration
		bestS candidateScores
	)

	i := 0
	for _, lookback := range grid.Lookbacks {
		for _, units1 := range grid.Units1 {
			for _, units2 := range grid.Units2 {
				for _, activation := range grid.Activations {
					scores := scoreCandidate(lookback, units1, units2, activation, historyLen, seed+i)
					// Strict less-than keeps the earliest candidate on ties.
					if !found || scores.validationLoss < bestS.validationLoss {
						found = true
						bestS = scores
						best = schema.Configuration{
							Lookback:      lookback,
							HiddenUnits1:  units1,
							HiddenUnits2:  units2,
							Activation:    activation,
							OptimizerName: optimizerFor(lookback, units1, units2, seed),
						}
					}
					i++
				}
			}
		}
	}

	if !found {
		return schema.Configuration{}, schema.SyntheticMetrics{}, false
	}
	return best, formatMetrics(bestS), true
}
