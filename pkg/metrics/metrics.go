// Package metrics provides evaluation measures for regression output.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// zeroMeanTol is the threshold below which the mean true value is treated
// as exactly zero for relative error purposes.
const zeroMeanTol = 1e-12

// Summary holds the standard evaluation measures for a batch of
// predictions against ground truth.
type Summary struct {
	RMSE         float64 `json:"rmse"`          // physical units
	RelativeRMSE float64 `json:"relative_rmse"` // percent of mean true value
	R2           float64 `json:"r2"`            // 1.0 = perfect
}

// RMSE returns the root-mean-squared error between predicted and true
// values. Returns 0 for empty input.
func RMSE(predicted, truth []float64) float64 {
	if len(predicted) == 0 || len(predicted) != len(truth) {
		return 0
	}
	var sum float64
	for i := range predicted {
		d := predicted[i] - truth[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(predicted)))
}

// RelativeRMSE returns the RMSE as a percentage of the mean true value.
// A zero mean yields 0 rather than a division blow-up; a merely small
// mean is reported as-is, which can legitimately be a large percentage.
func RelativeRMSE(predicted, truth []float64) float64 {
	if len(truth) == 0 {
		return 0
	}
	mean := stat.Mean(truth, nil)
	if math.Abs(mean) < zeroMeanTol {
		return 0
	}
	return RMSE(predicted, truth) / mean * 100
}

// RSquared returns the coefficient of determination.
func RSquared(predicted, truth []float64) float64 {
	return stat.RSquaredFrom(predicted, truth, nil)
}

// Evaluate computes all three measures in one pass over the data.
func Evaluate(predicted, truth []float64) Summary {
	return Summary{
		RMSE:         RMSE(predicted, truth),
		RelativeRMSE: RelativeRMSE(predicted, truth),
		R2:           RSquared(predicted, truth),
	}
}
