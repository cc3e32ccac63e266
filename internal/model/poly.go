package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

// BasisSpec is the ordered monomial structure mapping a standardized
// feature vector to its polynomial expansion. It carries no numeric
// state; fitting only establishes the term ordering, which must be
// reused verbatim at prediction time.
type BasisSpec struct {
	Degree int     `json:"degree"`
	Inputs int     `json:"inputs"`
	Terms  [][]int `json:"terms"` // exponent vector per expanded column
}

// FitBasis enumerates all monomials of total degree <= degree over the
// given number of inputs, bias term included. Ordering is
// deterministic: ascending total degree, then the lexicographic
// combination order within each degree.
func FitBasis(inputs, degree int) (BasisSpec, error) {
	if inputs <= 0 {
		return BasisSpec{}, fmt.Errorf("invalid input count %d", inputs)
	}
	if degree < 0 {
		return BasisSpec{}, fmt.Errorf("invalid degree %d", degree)
	}

	spec := BasisSpec{
		Degree: degree,
		Inputs: inputs,
		Terms:  make([][]int, 0, combin.Binomial(inputs+degree, degree)),
	}

	// Bias term: all exponents zero.
	spec.Terms = append(spec.Terms, make([]int, inputs))

	// Degree k terms are multisets of k feature indices, enumerated
	// through the stars-and-bars bijection with k-combinations of
	// inputs+k-1 positions.
	for k := 1; k <= degree; k++ {
		for _, c := range combin.Combinations(inputs+k-1, k) {
			exps := make([]int, inputs)
			for j, pos := range c {
				exps[pos-j]++
			}
			spec.Terms = append(spec.Terms, exps)
		}
	}

	return spec, nil
}

// Size returns the expanded vector width.
func (s BasisSpec) Size() int {
	return len(s.Terms)
}

// TransformVec expands a standardized vector into the monomial basis.
// A width mismatch against the fitted structure is a hard error.
func (s BasisSpec) TransformVec(v []float64) ([]float64, error) {
	if len(v) != s.Inputs {
		return nil, fmt.Errorf("basis fitted for %d inputs, vector has %d", s.Inputs, len(v))
	}
	out := make([]float64, len(s.Terms))
	for t, exps := range s.Terms {
		term := 1.0
		for i, e := range exps {
			for n := 0; n < e; n++ {
				term *= v[i]
			}
		}
		out[t] = term
	}
	return out, nil
}

// Transform expands every row of a standardized matrix.
func (s BasisSpec) Transform(m mat.Matrix) (*mat.Dense, error) {
	rows, cols := m.Dims()
	if cols != s.Inputs {
		return nil, fmt.Errorf("basis fitted for %d inputs, matrix has %d columns", s.Inputs, cols)
	}
	out := mat.NewDense(rows, s.Size(), nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, m)
		expanded, err := s.TransformVec(row)
		if err != nil {
			return nil, err
		}
		out.SetRow(i, expanded)
	}
	return out, nil
}
