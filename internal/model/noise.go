package model

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseInjector perturbs raw training targets with independent Gaussian
// noise to keep the regression from overfitting idealized measurements.
// It is a training-time tool only; prediction and evaluation never
// touch it.
type NoiseInjector struct {
	level float64
	dist  distuv.Normal
}

// NewNoiseInjector creates an injector with the given standard
// deviation. A seed of 0 seeds from the clock; any other value gives a
// reproducible stream. Level <= 0 disables perturbation.
func NewNoiseInjector(level float64, seed uint64) *NoiseInjector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &NoiseInjector{
		level: level,
		dist: distuv.Normal{
			Mu:    0,
			Sigma: level,
			Src:   rand.NewSource(seed),
		},
	}
}

// Perturb returns a copy of targets with noise drawn independently per
// row. Values are floored at zero so a noisy target can never push the
// log transform outside its domain.
func (n *NoiseInjector) Perturb(targets []float64) []float64 {
	out := make([]float64, len(targets))
	copy(out, targets)
	if n.level <= 0 {
		return out
	}
	for i := range out {
		out[i] += n.dist.Rand()
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}
