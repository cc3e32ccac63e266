// Package model implements the loop-field regression pipeline: feature
// engineering, standardization, polynomial expansion, log-linearized
// least-squares fitting, and the persisted model bundle shared by
// training and prediction.
package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"loop-field/internal/dataset"
)

// NumFeatures is the width of the engineered feature vector.
const NumFeatures = 8

// FeatureNames lists the engineered features in their fixed order.
var FeatureNames = [NumFeatures]string{
	"current",
	"radius",
	"current_over_radius",
	"log_current",
	"log_radius",
	"current_times_radius",
	"current_squared",
	"radius_squared",
}

// ErrDomainInvalid reports inputs the log terms cannot accept.
var ErrDomainInvalid = errors.New("current and radius must be positive and finite")

// Engineer derives the fixed 8-feature vector from a raw (current,
// radius) pair. It is deterministic, row-local, and used identically
// for training rows and single-input prediction.
func Engineer(current, radius float64) ([]float64, error) {
	if !(current > 0) || !(radius > 0) || math.IsInf(current, 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: current=%g radius=%g", ErrDomainInvalid, current, radius)
	}
	return []float64{
		current,
		radius,
		current / radius,
		math.Log(current),
		math.Log(radius),
		current * radius,
		current * current,
		radius * radius,
	}, nil
}

// EngineerMatrix builds the rows × 8 engineered feature matrix for a
// batch of observations. The first invalid observation aborts the
// batch with its row index.
func EngineerMatrix(obs []dataset.Observation) (*mat.Dense, error) {
	if len(obs) == 0 {
		return nil, errors.New("no observations")
	}
	m := mat.NewDense(len(obs), NumFeatures, nil)
	for i, o := range obs {
		row, err := Engineer(o.Current, o.Radius)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", i+1, err)
		}
		m.SetRow(i, row)
	}
	return m, nil
}
