package scanline

import (
	"math"

	"github.com/paulmach/orb"
)

// A SpatialPixelMap discretizes scan lines and receives filled runs.
type SpatialPixelMap interface {
	// DiscretizeY returns the scan line containing y.
	DiscretizeY(y float64) float64
	// YStep returns the distance between consecutive scan lines.
	YStep() float64
	// FillLine sets the cells of scan line y between xStart and xEnd to value.
	FillLine(y, xStart, xEnd float64, value byte)
}

// A Grid is a SpatialPixelMap of cols x rows cells covering a bound. Row 0 is
// at the bottom (minimum y) of the bound.
type Grid struct {
	bound      orb.Bound
	cols       int
	rows       int
	cellWidth  float64
	cellHeight float64
	cells      []byte
}

// NewGrid returns a new Grid with all cells set to zero.
func NewGrid(bound orb.Bound, cols, rows int) *Grid {
	return &Grid{
		bound:      bound,
		cols:       cols,
		rows:       rows,
		cellWidth:  (bound.Max.X() - bound.Min.X()) / float64(cols),
		cellHeight: (bound.Max.Y() - bound.Min.Y()) / float64(rows),
		cells:      make([]byte, cols*rows),
	}
}

// Bound returns g's bound.
func (g *Grid) Bound() orb.Bound {
	return g.bound
}

// Size returns the number of columns and rows of g.
func (g *Grid) Size() (int, int) {
	return g.cols, g.rows
}

// DiscretizeY returns the centre of the row containing y. A cell is filled
// when its centre is inside the polygon.
func (g *Grid) DiscretizeY(y float64) float64 {
	row := math.Floor((y - g.bound.Min.Y()) / g.cellHeight)
	return g.bound.Min.Y() + (row+0.5)*g.cellHeight
}

func (g *Grid) YStep() float64 {
	return g.cellHeight
}

// FillLine sets every cell of row y that overlaps [xStart, xEnd) to value.
// Parts of the run outside g are ignored.
func (g *Grid) FillLine(y, xStart, xEnd float64, value byte) {
	row := int(math.Floor((y - g.bound.Min.Y()) / g.cellHeight))
	if row < 0 || g.rows <= row {
		return
	}
	minCol := math.Max(math.Floor((xStart-g.bound.Min.X())/g.cellWidth), 0)
	maxCol := math.Min(math.Ceil((xEnd-g.bound.Min.X())/g.cellWidth), float64(g.cols))
	for col := int(minCol); col < int(maxCol); col++ {
		g.cells[row*g.cols+col] = value
	}
}

// Value returns the value of the cell at col, row.
func (g *Grid) Value(col, row int) byte {
	return g.cells[row*g.cols+col]
}

// At returns the value of the cell containing point. It returns false if
// point is outside g.
func (g *Grid) At(point orb.Point) (byte, bool) {
	if !g.bound.Contains(point) {
		return 0, false
	}
	col := min(int((point.X()-g.bound.Min.X())/g.cellWidth), g.cols-1)
	row := min(int((point.Y()-g.bound.Min.Y())/g.cellHeight), g.rows-1)
	return g.Value(col, row), true
}

// WalkSegment calls fn with the column and row of every cell that the segment
// from a to b passes through, in order from a, until fn returns false. Parts
// of the segment outside g are skipped.
func (g *Grid) WalkSegment(a, b orb.Point, fn func(col, row int) bool) {
	// Work in cell units.
	x0 := (a.X() - g.bound.Min.X()) / g.cellWidth
	y0 := (a.Y() - g.bound.Min.Y()) / g.cellHeight
	dx := (b.X()-g.bound.Min.X())/g.cellWidth - x0
	dy := (b.Y()-g.bound.Min.Y())/g.cellHeight - y0
	t0, t1, ok := clipSegment(x0, y0, dx, dy, float64(g.cols), float64(g.rows))
	if !ok {
		return
	}
	startX, startY := x0+t0*dx, y0+t0*dy
	endX, endY := x0+t1*dx, y0+t1*dy

	col, row := g.clampCell(startX, startY)
	endCol, endRow := g.clampCell(endX, endY)
	stepCol, tMaxX, tDeltaX := traversalStep(startX, endX-startX, col)
	stepRow, tMaxY, tDeltaY := traversalStep(startY, endY-startY, row)

	steps := abs(endCol-col) + abs(endRow-row)
	for range steps + 1 {
		if !fn(col, row) {
			return
		}
		if tMaxX < tMaxY {
			col += stepCol
			tMaxX += tDeltaX
		} else {
			row += stepRow
			tMaxY += tDeltaY
		}
		if col < 0 || g.cols <= col || row < 0 || g.rows <= row {
			return
		}
	}
}

// CellCount returns the number of cells of g with the given value.
func (g *Grid) CellCount(value byte) int {
	count := 0
	for _, cell := range g.cells {
		if cell == value {
			count++
		}
	}
	return count
}

func (g *Grid) clampCell(x, y float64) (int, int) {
	col := min(max(int(math.Floor(x)), 0), g.cols-1)
	row := min(max(int(math.Floor(y)), 0), g.rows-1)
	return col, row
}

// clipSegment clips the segment from x0, y0 with direction dx, dy to the box
// [0, width] x [0, height]. It returns the parameters of the clipped endpoints
// and false if the segment misses the box.
func clipSegment(x0, y0, dx, dy, width, height float64) (float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	for _, c := range [...]struct{ p, q float64 }{
		{p: -dx, q: x0},
		{p: dx, q: width - x0},
		{p: -dy, q: y0},
		{p: dy, q: height - y0},
	} {
		switch {
		case c.p == 0:
			if c.q < 0 {
				return 0, 0, false
			}
		case c.p < 0:
			t0 = max(t0, c.q/c.p)
		default:
			t1 = min(t1, c.q/c.p)
		}
	}
	return t0, t1, t0 <= t1
}

// traversalStep returns the cell step along one axis, the parameter at which
// the first cell boundary is crossed, and the parameter distance between
// boundaries.
func traversalStep(start, delta float64, cell int) (int, float64, float64) {
	switch {
	case delta > 0:
		return 1, (float64(cell+1) - start) / delta, 1 / delta
	case delta < 0:
		return -1, (float64(cell) - start) / delta, -1 / delta
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
