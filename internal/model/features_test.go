package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"loop-field/internal/dataset"
)

func TestEngineerClosedForm(t *testing.T) {
	current, radius := 2.5, 0.4

	v, err := Engineer(current, radius)
	require.NoError(t, err)
	require.Len(t, v, NumFeatures)

	require.Equal(t, current, v[0])
	require.Equal(t, radius, v[1])
	require.InDelta(t, current/radius, v[2], 1e-12)
	require.InDelta(t, math.Log(current), v[3], 1e-12)
	require.InDelta(t, math.Log(radius), v[4], 1e-12)
	require.InDelta(t, current*radius, v[5], 1e-12)
	require.InDelta(t, current*current, v[6], 1e-12)
	require.InDelta(t, radius*radius, v[7], 1e-12)
}

func TestEngineerDeterministic(t *testing.T) {
	a, err := Engineer(1.7, 0.09)
	require.NoError(t, err)
	b, err := Engineer(1.7, 0.09)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEngineerRejectsInvalidInputs(t *testing.T) {
	cases := []struct {
		name            string
		current, radius float64
	}{
		{"zero current", 0, 0.1},
		{"negative current", -1, 0.1},
		{"zero radius", 1, 0},
		{"negative radius", 1, -0.1},
		{"nan current", math.NaN(), 0.1},
		{"inf radius", 1, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Engineer(tc.current, tc.radius)
			require.ErrorIs(t, err, ErrDomainInvalid)
		})
	}
}

func TestEngineerMatrix(t *testing.T) {
	obs := []dataset.Observation{
		{Current: 1, Radius: 0.1},
		{Current: 2, Radius: 0.2},
	}
	m, err := EngineerMatrix(obs)
	require.NoError(t, err)

	rows, cols := m.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, NumFeatures, cols)
	require.InDelta(t, 10.0, m.At(0, 2), 1e-12) // current/radius
	require.InDelta(t, 0.4, m.At(1, 5), 1e-12)  // current*radius
}

func TestEngineerMatrixReportsRow(t *testing.T) {
	obs := []dataset.Observation{
		{Current: 1, Radius: 0.1},
		{Current: -3, Radius: 0.1},
	}
	_, err := EngineerMatrix(obs)
	require.ErrorIs(t, err, ErrDomainInvalid)
	require.Contains(t, err.Error(), "observation 2")
}
