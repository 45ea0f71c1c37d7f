package plot_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vqeverything/backend/internal/plot"
)

// TestRegions_coversTheSquare verifies the nine regions tile the full
// 0-100 square with no gaps: every third boundary appears exactly where
// the fixed constants put it.
func TestRegions_coversTheSquare(t *testing.T) {
	regions := plot.Regions()

	require.Len(t, regions, 9)

	third := plot.GridMax / 3
	seen := map[[2]int]bool{}
	for _, reg := range regions {
		assert.InDelta(t, float64(reg.Col)*third, reg.X0, 1e-9)
		assert.InDelta(t, float64(reg.Col+1)*third, reg.X1, 1e-9)
		assert.InDelta(t, float64(reg.Row)*third, reg.Y0, 1e-9)
		assert.InDelta(t, float64(reg.Row+1)*third, reg.Y1, 1e-9)
		assert.NotZero(t, reg.Color.A, "region fill should not be fully transparent")
		seen[[2]int{reg.Row, reg.Col}] = true
	}
	assert.Len(t, seen, 9, "each (row, col) pair should appear exactly once")
}

// TestRegions_cornerColors pins the palette orientation: green at cheap
// low-quality (bottom-left), red at expensive high-quality (top-right).
func TestRegions_cornerColors(t *testing.T) {
	colors := map[[2]int]drawing.Color{}
	for _, reg := range plot.Regions() {
		colors[[2]int{reg.Row, reg.Col}] = reg.Color
	}

	green := drawing.ColorFromHex("63be7b")
	red := drawing.ColorFromHex("f8696b")

	bottomLeft := colors[[2]int{0, 0}]
	assert.Equal(t, [3]uint8{green.R, green.G, green.B}, [3]uint8{bottomLeft.R, bottomLeft.G, bottomLeft.B})

	topRight := colors[[2]int{2, 2}]
	assert.Equal(t, [3]uint8{red.R, red.G, red.B}, [3]uint8{topRight.R, topRight.G, topRight.B})
}

// TestCellFor covers interior points, the exact third boundaries (which
// belong to the upper cell), and the 100 edge (clamped into the last cell).
func TestCellFor(t *testing.T) {
	tests := []struct {
		name           string
		value, quality float64
		row, col       int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 50, 50, 1, 1},
		{"spec example: value 42 quality 77", 42, 77, 1, 2},
		{"boundary belongs to upper cell", 100.0 / 3, 200.0 / 3, 1, 2},
		{"max clamps into last cell", 100, 100, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := plot.CellFor(tt.value, tt.quality)
			assert.Equal(t, tt.row, row, "row")
			assert.Equal(t, tt.col, col, "col")
		})
	}
}

// pngMagic is the fixed 8-byte PNG file signature.
var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

// TestRender_producesPNG renders a couple of markers and checks the output
// is a PNG stream. Pixel-exact assertions would just test go-chart.
func TestRender_producesPNG(t *testing.T) {
	var buf bytes.Buffer

	err := plot.Render(&buf, []plot.Marker{
		{Quality: 77, Value: 42, Label: "Widget"},
		{Quality: 10, Value: 90, Label: "Overpriced"},
	})

	require.NoError(t, err)
	require.Greater(t, buf.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

// TestRender_emptyAndSingle verifies the edge cases go-chart normally
// rejects: an empty marker set and a single marker both render cleanly.
func TestRender_emptyAndSingle(t *testing.T) {
	var empty bytes.Buffer
	require.NoError(t, plot.Render(&empty, nil))
	assert.Equal(t, pngMagic, empty.Bytes()[:len(pngMagic)])

	var single bytes.Buffer
	require.NoError(t, plot.Render(&single, []plot.Marker{{Quality: 50, Value: 50}}))
	assert.Equal(t, pngMagic, single.Bytes()[:len(pngMagic)])
}
