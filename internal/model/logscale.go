package model

import "math"

// LogOffset is the numerical-stability offset applied before taking the
// log of the physical target. It keeps log(0) finite and tolerates
// tiny negative excursions introduced by training noise.
const LogOffset = 1e-10

// LogForward maps a physical target value into the log domain used as
// the regression's fitting target.
func LogForward(v float64) float64 {
	return math.Log(v + LogOffset)
}

// LogInverse maps a log-domain prediction back to physical units.
// LogInverse(LogForward(v)) == v within floating-point tolerance for
// any v > -LogOffset.
func LogInverse(lv float64) float64 {
	return math.Exp(lv) - LogOffset
}
