// Package plot renders the submission scatter chart: markers on a fixed
// 0-100 x 0-100 square partitioned into a decorative 3x3 grid of colored
// regions. Quality runs along the x axis, value along the y axis.
package plot

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GridMax is the upper bound of both axes.
const GridMax = 100.0

// regionAlpha makes the colored regions semi-transparent so markers stay
// visible through them.
const regionAlpha = 76 // 0.3 * 255

// markerColor is the dot color, a prussian blue shared with the frontends.
var markerColor = drawing.Color{R: 0x00, G: 0x31, B: 0x53, A: 255}

// gridLineColor draws the region borders and the bold third dividers.
var gridLineColor = drawing.Color{R: 0x22, G: 0x22, B: 0x22, A: 255}

// palette holds the region fill colors, indexed [row][col] where row is the
// value third (bottom to top) and col is the quality third (left to right).
// Cheap low-quality is green, expensive high-quality is red, and the
// diagonal between them fades through neutrals, mirroring the product's
// grid artwork.
var palette = [3][3]string{
	{"63be7b", "9ed6ae", "ffffff"},
	{"aeddbc", "fbe2e4", "facbce"},
	{"fbdfe2", "f9a9ab", "f8696b"},
}

// Marker is one plotted point with its hover/label text.
type Marker struct {
	// Quality is the x coordinate, Value the y coordinate.
	Quality float64
	Value   float64
	Label   string
}

// Region is one of the nine fixed subdivisions of the plot square.
type Region struct {
	Row, Col       int
	X0, Y0, X1, Y1 float64
	Color          drawing.Color
}

// Regions returns the nine colored regions, computed once from fixed
// constants. The result is independent of any data.
func Regions() []Region {
	third := GridMax / 3
	regions := make([]Region, 0, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			regions = append(regions, Region{
				Row:   row,
				Col:   col,
				X0:    float64(col) * third,
				Y0:    float64(row) * third,
				X1:    float64(col+1) * third,
				Y1:    float64(row+1) * third,
				Color: drawing.ColorFromHex(palette[row][col]).WithAlpha(regionAlpha),
			})
		}
	}
	return regions
}

// CellFor returns the (row, col) grid cell containing the given point.
// Row is the value third, col the quality third; boundaries sit at 100/3
// and 200/3, and a coordinate on a boundary belongs to the upper cell.
func CellFor(value, quality float64) (row, col int) {
	third := GridMax / 3
	row = int(value / third)
	col = int(quality / third)
	if row > 2 {
		row = 2
	}
	if col > 2 {
		col = 2
	}
	return row, col
}

// Render draws the markers and the decorative grid as a PNG.
func Render(w io.Writer, markers []Marker) error {
	xs, ys := seriesValues(markers)

	ch := chart.Chart{
		Width:  560,
		Height: 560,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: GridMax},
			Ticks: bandTicks("Low Q", "Mod Q", "High Q"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: GridMax},
			Ticks: bandTicks("Cheap", "Mod Value", "Expensive"),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    6,
					DotColor:    markerColor,
				},
			},
		},
		Elements: []chart.Renderable{gridOverlay},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plot.Render: %w", err)
	}
	return nil
}

// seriesValues converts markers to series slices. go-chart refuses empty or
// single-point series, so the empty case gets two invisible anchor points
// and a single marker is doubled (harmless: the fixed range hides it).
func seriesValues(markers []Marker) (xs, ys []float64) {
	if len(markers) == 0 {
		return []float64{0, GridMax}, []float64{-GridMax, -GridMax}
	}
	for _, m := range markers {
		xs = append(xs, m.Quality)
		ys = append(ys, m.Value)
	}
	if len(markers) == 1 {
		xs = append(xs, markers[0].Quality)
		ys = append(ys, markers[0].Value)
	}
	return xs, ys
}

// bandTicks labels the middle of each third instead of numeric values.
// The 0 and 100 ticks carry empty labels so the axis range stays anchored.
func bandTicks(low, mid, high string) []chart.Tick {
	sixth := GridMax / 6
	return []chart.Tick{
		{Value: 0, Label: ""},
		{Value: sixth, Label: low},
		{Value: 3 * sixth, Label: mid},
		{Value: 5 * sixth, Label: high},
		{Value: GridMax, Label: ""},
	}
}

// gridOverlay paints the nine translucent regions and the bold divider
// lines at the third boundaries onto the finished chart canvas.
func gridOverlay(r chart.Renderer, canvasBox chart.Box, _ chart.Style) {
	for _, reg := range Regions() {
		x0, y0 := toPixels(canvasBox, reg.X0, reg.Y0)
		x1, y1 := toPixels(canvasBox, reg.X1, reg.Y1)

		r.SetFillColor(reg.Color)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		r.Fill()
	}

	r.SetStrokeColor(gridLineColor)
	r.SetStrokeWidth(2.0)
	for k := 1; k < 3; k++ {
		at := float64(k) * GridMax / 3

		// Vertical divider.
		x, yTop := toPixels(canvasBox, at, GridMax)
		_, yBot := toPixels(canvasBox, at, 0)
		r.MoveTo(x, yTop)
		r.LineTo(x, yBot)
		r.Stroke()

		// Horizontal divider.
		xLeft, y := toPixels(canvasBox, 0, at)
		xRight, _ := toPixels(canvasBox, GridMax, at)
		r.MoveTo(xLeft, y)
		r.LineTo(xRight, y)
		r.Stroke()
	}
}

// toPixels maps a data coordinate onto the canvas box. The y axis flips
// because raster coordinates grow downward.
func toPixels(box chart.Box, x, y float64) (int, int) {
	px := box.Left + int(x/GridMax*float64(box.Width()))
	py := box.Bottom - int(y/GridMax*float64(box.Height()))
	return px, py
}
