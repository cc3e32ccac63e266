package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

func TestFitBasisSize(t *testing.T) {
	cases := []struct {
		inputs, degree int
	}{
		{2, 2},
		{3, 3},
		{NumFeatures, 2},
		{NumFeatures, 4},
	}
	for _, tc := range cases {
		spec, err := FitBasis(tc.inputs, tc.degree)
		require.NoError(t, err)
		require.Equal(t, combin.Binomial(tc.inputs+tc.degree, tc.degree), spec.Size(),
			"inputs=%d degree=%d", tc.inputs, tc.degree)
	}
}

func TestFitBasisDeterministic(t *testing.T) {
	a, err := FitBasis(NumFeatures, 4)
	require.NoError(t, err)
	b, err := FitBasis(NumFeatures, 4)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFitBasisDegreeTwoOrdering(t *testing.T) {
	spec, err := FitBasis(2, 2)
	require.NoError(t, err)

	want := [][]int{
		{0, 0}, // bias
		{1, 0}, // x0
		{0, 1}, // x1
		{2, 0}, // x0^2
		{1, 1}, // x0*x1
		{0, 2}, // x1^2
	}
	require.Equal(t, want, spec.Terms)
}

func TestTransformVecValues(t *testing.T) {
	spec, err := FitBasis(2, 2)
	require.NoError(t, err)

	out, err := spec.TransformVec([]float64{2, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4, 6, 9}, out)
}

func TestTransformMatrix(t *testing.T) {
	spec, err := FitBasis(2, 1)
	require.NoError(t, err)

	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	out, err := spec.Transform(m)
	require.NoError(t, err)

	rows, cols := out.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, 3, cols)
	require.Equal(t, 1.0, out.At(0, 0))
	require.Equal(t, 1.0, out.At(0, 1))
	require.Equal(t, 4.0, out.At(1, 2))
}

func TestTransformVecWidthMismatch(t *testing.T) {
	spec, err := FitBasis(3, 2)
	require.NoError(t, err)

	_, err = spec.TransformVec([]float64{1, 2})
	require.Error(t, err)

	_, err = spec.Transform(mat.NewDense(1, 2, []float64{1, 2}))
	require.Error(t, err)
}

func TestFitBasisInvalidArgs(t *testing.T) {
	_, err := FitBasis(0, 2)
	require.Error(t, err)
	_, err = FitBasis(3, -1)
	require.Error(t, err)
}

func TestFitBasisDegreeZero(t *testing.T) {
	spec, err := FitBasis(4, 0)
	require.NoError(t, err)
	require.Equal(t, 1, spec.Size()) // bias only
}
