package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// svdRCond is the reciprocal condition number used to estimate the
// effective rank when falling back to the SVD solver.
const svdRCond = 1e-15

// Coefficients is the fitted weight vector over the expanded polynomial
// basis. The bias term occupies index 0 (the basis places the constant
// monomial first), so it doubles as the intercept.
type Coefficients struct {
	Weights []float64 `json:"weights"`
}

// FitOLS computes the ordinary least-squares solution of X w = y.
// Overdetermined systems go through QR; underdetermined or
// rank-deficient ones fall back to the minimum-norm SVD solution, so a
// degenerate design matrix still yields a defined fit.
func FitOLS(x mat.Matrix, y []float64) (Coefficients, error) {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return Coefficients{}, errors.New("empty design matrix")
	}
	if len(y) != rows {
		return Coefficients{}, fmt.Errorf("design matrix has %d rows, target has %d", rows, len(y))
	}

	b := mat.NewVecDense(rows, y)

	if rows >= cols {
		var qr mat.QR
		qr.Factorize(x)

		var w mat.VecDense
		err := qr.SolveVecTo(&w, false, b)
		if err == nil {
			return Coefficients{Weights: vecSlice(&w)}, nil
		}
		var cond mat.Condition
		if errors.As(err, &cond) {
			// Ill-conditioned but defined; accept the solution.
			return Coefficients{Weights: vecSlice(&w)}, nil
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return Coefficients{}, errors.New("least squares: SVD factorization failed")
	}
	rank := svd.Rank(svdRCond)
	if rank == 0 {
		return Coefficients{}, errors.New("least squares: design matrix has rank 0")
	}
	var w mat.VecDense
	svd.SolveVecTo(&w, b, rank)
	return Coefficients{Weights: vecSlice(&w)}, nil
}

// Predict evaluates the linear combination over one expanded vector.
func (c Coefficients) Predict(expanded []float64) (float64, error) {
	if len(expanded) != len(c.Weights) {
		return 0, fmt.Errorf("model has %d weights, input has %d terms", len(c.Weights), len(expanded))
	}
	return floats.Dot(c.Weights, expanded), nil
}

// Intercept returns the bias-term coefficient.
func (c Coefficients) Intercept() float64 {
	if len(c.Weights) == 0 {
		return 0
	}
	return c.Weights[0]
}

// Coef returns the non-bias coefficients.
func (c Coefficients) Coef() []float64 {
	if len(c.Weights) < 2 {
		return nil
	}
	return c.Weights[1:]
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
