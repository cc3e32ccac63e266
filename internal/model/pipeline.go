package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"loop-field/internal/dataset"
	"loop-field/internal/logging"
	"loop-field/pkg/metrics"
)

// Tunable defaults. Degree and noise level are the only configuration
// options of the pipeline.
const (
	DefaultDegree     = 4
	DefaultNoiseLevel = 0.05
)

// Options configures a training run.
type Options struct {
	Degree     int     // polynomial degree; <= 0 means DefaultDegree
	NoiseLevel float64 // Gaussian sd added to raw targets; 0 disables
	Seed       uint64  // 0 seeds from the clock
}

// DefaultOptions returns the standard training configuration.
func DefaultOptions() Options {
	return Options{Degree: DefaultDegree, NoiseLevel: DefaultNoiseLevel}
}

// Prediction is one evaluated row. True is NaN when the observation
// carried no measured field.
type Prediction struct {
	Current   float64
	Radius    float64
	True      float64
	Predicted float64
}

// Report is the result surface of a batch prediction. Metrics is nil
// unless every input row carried ground truth.
type Report struct {
	Predictions []Prediction
	Metrics     *metrics.Summary
}

// Train fits the full pipeline on measured observations and assembles
// the bundle: engineer features, perturb targets, fit and apply the
// scaler, fit and apply the polynomial basis, then solve least squares
// against the log-domain targets. Every observation must carry a
// measured field.
func Train(obs []dataset.Observation, opts Options) (*Bundle, error) {
	if opts.Degree <= 0 {
		opts.Degree = DefaultDegree
	}
	if opts.NoiseLevel < 0 {
		return nil, fmt.Errorf("noise level must be >= 0, got %g", opts.NoiseLevel)
	}
	if len(obs) == 0 {
		return nil, errors.New("no training observations")
	}
	for i, o := range obs {
		if !o.HasField() {
			return nil, fmt.Errorf("observation %d has no measured field value", i+1)
		}
	}

	log := logging.L()
	log.Debug("training", "rows", len(obs), "degree", opts.Degree, "noise_level", opts.NoiseLevel)

	engineered, err := EngineerMatrix(obs)
	if err != nil {
		return nil, err
	}

	targets := NewNoiseInjector(opts.NoiseLevel, opts.Seed).Perturb(dataset.Fields(obs))
	logTargets := make([]float64, len(targets))
	for i, t := range targets {
		logTargets[i] = LogForward(t)
	}

	scaler, err := FitScaler(engineered)
	if err != nil {
		return nil, err
	}
	standardized, err := scaler.Transform(engineered)
	if err != nil {
		return nil, err
	}

	basis, err := FitBasis(NumFeatures, opts.Degree)
	if err != nil {
		return nil, err
	}
	expanded, err := basis.Transform(standardized)
	if err != nil {
		return nil, err
	}

	coeffs, err := FitOLS(expanded, logTargets)
	if err != nil {
		return nil, err
	}
	log.Debug("fit complete", "terms", basis.Size())

	return &Bundle{
		SchemaVersion: BundleSchema,
		TrainedAt:     time.Now().UTC(),
		Rows:          len(obs),
		Degree:        opts.Degree,
		NoiseLevel:    opts.NoiseLevel,
		Scaler:        scaler,
		Basis:         basis,
		Model:         coeffs,
	}, nil
}

// PredictOne predicts the magnetic field for a single (current, radius)
// pair using a loaded bundle. Nothing is refit: the stored scaler
// parameters and basis structure are applied verbatim and the log
// transform is inverted at the end.
func PredictOne(b *Bundle, current, radius float64) (float64, error) {
	if b == nil {
		return 0, ErrNoModel
	}

	features, err := Engineer(current, radius)
	if err != nil {
		return 0, err
	}
	standardized, err := b.Scaler.TransformVec(features)
	if err != nil {
		return 0, err
	}
	expanded, err := b.Basis.TransformVec(standardized)
	if err != nil {
		return 0, err
	}
	logPred, err := b.Model.Predict(expanded)
	if err != nil {
		return 0, err
	}
	return LogInverse(logPred), nil
}

// Predict evaluates the bundle over a batch of observations. When every
// row carries a measured field, the report also includes RMSE, relative
// RMSE and R² computed in physical units.
func Predict(b *Bundle, obs []dataset.Observation) (*Report, error) {
	if b == nil {
		return nil, ErrNoModel
	}
	if len(obs) == 0 {
		return nil, errors.New("no observations to predict")
	}

	rep := &Report{Predictions: make([]Prediction, len(obs))}
	for i, o := range obs {
		pred, err := PredictOne(b, o.Current, o.Radius)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", i+1, err)
		}
		rep.Predictions[i] = Prediction{
			Current:   o.Current,
			Radius:    o.Radius,
			True:      o.Field,
			Predicted: pred,
		}
	}

	if dataset.AllHaveField(obs) {
		predicted := make([]float64, len(rep.Predictions))
		truth := make([]float64, len(rep.Predictions))
		for i, p := range rep.Predictions {
			predicted[i] = p.Predicted
			truth[i] = p.True
		}
		s := metrics.Evaluate(predicted, truth)
		rep.Metrics = &s
	}

	return rep, nil
}

// HasTruth reports whether the prediction carries a measured value.
func (p Prediction) HasTruth() bool {
	return !math.IsNaN(p.True)
}
