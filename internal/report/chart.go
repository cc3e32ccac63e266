package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"loop-field/internal/model"
)

// Panel geometry. Two panels side by side, each with an inner plot
// rectangle inside fixed margins.
const (
	panelWidth   = 480
	panelHeight  = 360
	marginLeft   = 56
	marginRight  = 16
	marginTop    = 28
	marginBottom = 40
)

var (
	chartBackground = color.RGBA{255, 255, 255, 255}
	axisColor       = color.RGBA{60, 60, 60, 255}
	measuredColor   = color.RGBA{30, 80, 200, 255}
	predictedColor  = color.RGBA{210, 60, 40, 255}
)

// ComparisonChart renders the predicted-vs-true view: the left panel
// plots both series against current, the right against radius, each
// sorted ascending by its own axis.
func ComparisonChart(rep *model.Report) (*image.RGBA, error) {
	if rep == nil || len(rep.Predictions) == 0 {
		return nil, errors.New("nothing to chart")
	}

	img := image.NewRGBA(image.Rect(0, 0, 2*panelWidth, panelHeight))
	fill(img, chartBackground)

	left := panel{origin: image.Pt(0, 0), xLabel: "Current (A)", title: "B vs current"}
	right := panel{origin: image.Pt(panelWidth, 0), xLabel: "Radius (m)", title: "B vs radius"}

	byCurrent := sortedCopy(rep.Predictions, func(p model.Prediction) float64 { return p.Current })
	byRadius := sortedCopy(rep.Predictions, func(p model.Prediction) float64 { return p.Radius })

	left.draw(img, byCurrent, func(p model.Prediction) float64 { return p.Current })
	right.draw(img, byRadius, func(p model.Prediction) float64 { return p.Radius })

	return img, nil
}

// SaveChart renders the comparison view and writes it as a PNG.
func SaveChart(path string, rep *model.Report) error {
	img, err := ComparisonChart(rep)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

type panel struct {
	origin image.Point
	xLabel string
	title  string
}

// plotRect returns the inner drawing rectangle of the panel.
func (pn panel) plotRect() image.Rectangle {
	return image.Rect(
		pn.origin.X+marginLeft,
		pn.origin.Y+marginTop,
		pn.origin.X+panelWidth-marginRight,
		pn.origin.Y+panelHeight-marginBottom,
	)
}

func (pn panel) draw(img *image.RGBA, preds []model.Prediction, xOf func(model.Prediction) float64) {
	rect := pn.plotRect()

	// Axis frame
	drawLine(img, rect.Min.X, rect.Max.Y, rect.Max.X, rect.Max.Y, axisColor)
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Min.X, rect.Max.Y, axisColor)

	xMin, xMax := seriesRange(preds, xOf)
	yMin, yMax := valueRange(preds)

	toPx := func(x, y float64) (int, int) {
		px := rect.Min.X + int(float64(rect.Dx())*(x-xMin)/(xMax-xMin)+0.5)
		py := rect.Max.Y - int(float64(rect.Dy())*(y-yMin)/(yMax-yMin)+0.5)
		return px, py
	}

	// Measured series first, predicted on top.
	var prevX, prevY int
	havePrev := false
	for _, p := range preds {
		if !p.HasTruth() {
			continue
		}
		x, y := toPx(xOf(p), p.True)
		fillSquare(img, x, y, 2, measuredColor)
		if havePrev {
			drawLine(img, prevX, prevY, x, y, measuredColor)
		}
		prevX, prevY = x, y
		havePrev = true
	}

	havePrev = false
	for _, p := range preds {
		x, y := toPx(xOf(p), p.Predicted)
		fillSquare(img, x, y, 2, predictedColor)
		if havePrev {
			drawLine(img, prevX, prevY, x, y, predictedColor)
		}
		prevX, prevY = x, y
		havePrev = true
	}

	drawText(img, pn.origin.X+marginLeft, pn.origin.Y+16, pn.title, axisColor)
	drawText(img, pn.origin.X+panelWidth/2-30, pn.origin.Y+panelHeight-12, pn.xLabel, axisColor)
	drawText(img, pn.origin.X+4, pn.origin.Y+marginTop+10, "B (T)", axisColor)

	// Legend in the top-right corner of the plot area.
	lx := rect.Max.X - 110
	drawLine(img, lx, rect.Min.Y+8, lx+18, rect.Min.Y+8, measuredColor)
	drawText(img, lx+24, rect.Min.Y+12, "measured", measuredColor)
	drawLine(img, lx, rect.Min.Y+22, lx+18, rect.Min.Y+22, predictedColor)
	drawText(img, lx+24, rect.Min.Y+26, "predicted", predictedColor)

	drawText(img, rect.Min.X-4, rect.Max.Y+14, formatTick(xMin), axisColor)
	drawText(img, rect.Max.X-40, rect.Max.Y+14, formatTick(xMax), axisColor)
	drawText(img, pn.origin.X+4, rect.Max.Y, formatTick(yMin), axisColor)
	drawText(img, pn.origin.X+4, rect.Min.Y+4, formatTick(yMax), axisColor)
}

func sortedCopy(preds []model.Prediction, key func(model.Prediction) float64) []model.Prediction {
	out := make([]model.Prediction, len(preds))
	copy(out, preds)
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

func seriesRange(preds []model.Prediction, xOf func(model.Prediction) float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range preds {
		x := xOf(p)
		min = math.Min(min, x)
		max = math.Max(max, x)
	}
	return padRange(min, max)
}

func valueRange(preds []model.Prediction) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range preds {
		min = math.Min(min, p.Predicted)
		max = math.Max(max, p.Predicted)
		if p.HasTruth() {
			min = math.Min(min, p.True)
			max = math.Max(max, p.True)
		}
	}
	return padRange(min, max)
}

// padRange widens a degenerate or tight interval so the scale mapping
// never divides by zero.
func padRange(min, max float64) (float64, float64) {
	if math.IsInf(min, 1) || math.IsInf(max, -1) {
		return 0, 1
	}
	if min == max {
		pad := math.Abs(min) * 0.1
		if pad == 0 {
			pad = 1
		}
		return min - pad, max + pad
	}
	pad := (max - min) * 0.05
	return min - pad, max + pad
}

func formatTick(v float64) string {
	av := math.Abs(v)
	if av != 0 && (av < 1e-3 || av >= 1e4) {
		return fmt.Sprintf("%.2e", v)
	}
	return fmt.Sprintf("%.3g", v)
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillSquare(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawLine draws a line segment by stepping the major axis one pixel at
// a time.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Max(math.Abs(float64(dx)), math.Abs(float64(dy))))
	if steps == 0 {
		img.SetRGBA(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetRGBA(x0+int(float64(dx)*t+0.5), y0+int(float64(dy)*t+0.5), c)
	}
}

func drawText(img *image.RGBA, x, y int, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
