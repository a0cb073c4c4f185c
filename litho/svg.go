package litho

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
)

// Canvas geometry: a tall, narrow strip, roughly a 2x6 inch figure.
const (
	svgWidth    = 220
	svgHeight   = 620
	marginTop   = 10
	marginBot   = 10
	columnLeft  = 70
	columnRight = 200
)

const (
	axisStyle  = `stroke="black" stroke-width="1"`
	tickStyle  = `font-size="10" text-anchor="end" dominant-baseline="middle" font-family="sans-serif"`
	labelStyle = `font-size="9" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif"`
)

// RenderSVG draws the column as an SVG document: one filled, black-edged
// rectangle per segment spanning base to top elevation, a rotated geology
// code label in each, and an elevation axis in m OD with ground at the top.
func RenderSVG(col Column) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	span := col.MaxElevation - col.MinElevation
	if span <= 0 {
		span = 1
	}
	plotH := float64(svgHeight - marginTop - marginBot)
	// Inverted axis: larger elevations map to smaller y.
	y := func(elev float64) int {
		return marginTop + int(math.Round((col.MaxElevation-elev)/span*plotH))
	}

	canvas.Start(svgWidth, svgHeight)
	canvas.Rect(0, 0, svgWidth, svgHeight, `fill="white"`)

	// Axis line and metre ticks.
	canvas.Line(columnLeft-10, y(col.MaxElevation), columnLeft-10, y(col.MinElevation), axisStyle)
	step := tickStep(span)
	for tick := math.Ceil(col.MinElevation/step) * step; tick <= col.MaxElevation+1e-9; tick += step {
		ty := y(tick)
		canvas.Line(columnLeft-16, ty, columnLeft-10, ty, axisStyle)
		canvas.Text(columnLeft-20, ty, fmt.Sprintf("%.1f", tick), tickStyle)
	}
	canvas.TranslateRotate(14, svgHeight/2, -90)
	canvas.Text(0, 0, "Elevation (m OD)", `font-size="11" text-anchor="middle" font-family="sans-serif"`)
	canvas.Gend()

	for _, seg := range col.Segments {
		top := y(seg.TopElevation)
		height := y(seg.BaseElevation) - top
		canvas.Rect(columnLeft, top, columnRight-columnLeft, height,
			fmt.Sprintf(`fill="%s" stroke="black" stroke-width="1"`, seg.Color))

		cx := (columnLeft + columnRight) / 2
		cy := top + height/2
		canvas.TranslateRotate(cx, cy, -90)
		canvas.Text(0, 0, seg.GeologyCode, labelStyle)
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

// tickStep picks a metre tick spacing that keeps label counts readable.
func tickStep(span float64) float64 {
	switch {
	case span <= 12:
		return 1
	case span <= 30:
		return 2
	case span <= 75:
		return 5
	default:
		return 10
	}
}
