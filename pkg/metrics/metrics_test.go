package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRMSE(t *testing.T) {
	pred := []float64{1, 2, 3}
	truth := []float64{1, 2, 3}
	require.Equal(t, 0.0, RMSE(pred, truth))

	pred = []float64{2, 4}
	truth = []float64{0, 0}
	// sqrt((4+16)/2) = sqrt(10)
	require.InDelta(t, 3.1622776601, RMSE(pred, truth), 1e-9)
}

func TestRMSEEmpty(t *testing.T) {
	require.Equal(t, 0.0, RMSE(nil, nil))
}

func TestRelativeRMSE(t *testing.T) {
	pred := []float64{11, 9}
	truth := []float64{10, 10}
	// RMSE = 1, mean = 10 -> 10%
	require.InDelta(t, 10.0, RelativeRMSE(pred, truth), 1e-9)
}

func TestRelativeRMSEZeroMean(t *testing.T) {
	pred := []float64{1, 2}
	truth := []float64{1, -1}
	require.Equal(t, 0.0, RelativeRMSE(pred, truth))
}

func TestRSquaredPerfect(t *testing.T) {
	v := []float64{1, 2, 3, 4}
	require.InDelta(t, 1.0, RSquared(v, v), 1e-12)
}

func TestEvaluate(t *testing.T) {
	pred := []float64{1, 2, 3}
	truth := []float64{1, 2, 3}
	s := Evaluate(pred, truth)
	require.Equal(t, 0.0, s.RMSE)
	require.Equal(t, 0.0, s.RelativeRMSE)
	require.InDelta(t, 1.0, s.R2, 1e-12)
}
