package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogRoundTrip(t *testing.T) {
	values := []float64{1e-9, 1.2566e-5, 0.001, 0.5, 1, 42, 1e3, 999999}
	for _, v := range values {
		got := LogInverse(LogForward(v))
		require.InEpsilon(t, v, got, 1e-9, "v=%g", v)
	}
}

func TestLogForwardAtZero(t *testing.T) {
	// log(0 + eps) stays finite.
	lv := LogForward(0)
	require.False(t, lv != lv) // not NaN
	require.InDelta(t, 0.0, LogInverse(lv), 1e-15)
}
