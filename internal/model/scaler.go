package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrZeroVariance reports a feature column whose training values are
// all identical, which standardization cannot scale.
var ErrZeroVariance = errors.New("zero-variance feature column")

// StandardizationParams holds per-feature mean and standard deviation
// learned once from the training feature matrix. Immutable after fit;
// every later transform call reuses the same values.
type StandardizationParams struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler learns standardization parameters from a training feature
// matrix. The standard deviation is the sample (n-1) deviation; the
// transform side uses the same convention by construction. A
// zero-variance column is a degenerate-statistics error naming the
// offending feature.
func FitScaler(m mat.Matrix) (StandardizationParams, error) {
	rows, cols := m.Dims()
	if rows < 2 {
		return StandardizationParams{}, fmt.Errorf("need at least 2 rows to fit scaler, got %d", rows)
	}

	p := StandardizationParams{
		Mean: make([]float64, cols),
		Std:  make([]float64, cols),
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			name := fmt.Sprintf("column %d", j)
			if j < len(FeatureNames) {
				name = FeatureNames[j]
			}
			return StandardizationParams{}, fmt.Errorf("%w: %s", ErrZeroVariance, name)
		}
		p.Mean[j] = mean
		p.Std[j] = std
	}
	return p, nil
}

// Transform standardizes a feature matrix column-wise with the fitted
// parameters.
func (p StandardizationParams) Transform(m mat.Matrix) (*mat.Dense, error) {
	rows, cols := m.Dims()
	if cols != len(p.Mean) {
		return nil, fmt.Errorf("scaler fitted for %d features, input has %d", len(p.Mean), cols)
	}
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (m.At(i, j)-p.Mean[j])/p.Std[j])
		}
	}
	return out, nil
}

// TransformVec standardizes a single feature vector.
func (p StandardizationParams) TransformVec(v []float64) ([]float64, error) {
	if len(v) != len(p.Mean) {
		return nil, fmt.Errorf("scaler fitted for %d features, input has %d", len(p.Mean), len(v))
	}
	out := make([]float64, len(v))
	for j := range v {
		out[j] = (v[j] - p.Mean[j]) / p.Std[j]
	}
	return out, nil
}
