// Package report formats batch prediction results: the fixed-width
// console table, the metrics block, and the two-panel comparison chart.
package report

import (
	"fmt"
	"io"

	"loop-field/internal/model"
)

// WriteTable prints the per-row results in a fixed-width table. Rows
// without a measured value show a dash in the true column.
func WriteTable(w io.Writer, rep *model.Report) {
	fmt.Fprintf(w, "%-6s %12s %12s %14s %14s\n", "Row", "Current(A)", "Radius(m)", "True B(T)", "Predicted B(T)")
	for i, p := range rep.Predictions {
		trueCol := "-"
		if p.HasTruth() {
			trueCol = fmt.Sprintf("%.6e", p.True)
		}
		fmt.Fprintf(w, "%-6d %12.4g %12.4g %14s %14.6e\n", i+1, p.Current, p.Radius, trueCol, p.Predicted)
	}
}

// WriteMetrics prints the evaluation block when ground truth was
// available for every row.
func WriteMetrics(w io.Writer, rep *model.Report) {
	if rep.Metrics == nil {
		fmt.Fprintln(w, "No complete ground truth; metrics skipped.")
		return
	}
	fmt.Fprintf(w, "RMSE:          %.6e T\n", rep.Metrics.RMSE)
	fmt.Fprintf(w, "Relative RMSE: %.2f%%\n", rep.Metrics.RelativeRMSE)
	fmt.Fprintf(w, "R²:            %.4f\n", rep.Metrics.R2)
}
