// Package scanline fills polygons into spatial pixel maps with the scan-line
// algorithm: a global edge table sorted by minimum y, an active edge list
// sorted by the x where each edge crosses the current scan line, and the
// even-odd rule.
package scanline

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scanLines = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanline_scan_lines_total",
		Help: "The total number of scan lines processed",
	})
	filledRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanline_filled_runs_total",
		Help: "The total number of runs written to pixel maps",
	})
)

var (
	ErrFilled       = errors.New("already filled")
	ErrFinalized    = errors.New("edge table finalized")
	ErrInvalidEdge  = errors.New("invalid edge")
	ErrInvalidYStep = errors.New("invalid y step")
	ErrNotFinalized = errors.New("edge table not finalized")
)

// An edge is a non-horizontal polygon edge.
type edge struct {
	minY         float64
	maxY         float64
	x0           float64 // x at minY.
	inverseSlope float64 // dx/dy.
	x            float64 // x at the current scan line.
}

func (e *edge) updateX(y float64) {
	e.x = e.x0 + e.inverseSlope*(y-e.minY)
}

// compareEdgeTable orders edges by minY, then x0. The remaining fields only
// make the order independent of insertion order.
func compareEdgeTable(a, b edge) int {
	if c := cmp.Compare(a.minY, b.minY); c != 0 {
		return c
	}
	if c := cmp.Compare(a.x0, b.x0); c != 0 {
		return c
	}
	if c := cmp.Compare(a.inverseSlope, b.inverseSlope); c != 0 {
		return c
	}
	return cmp.Compare(a.maxY, b.maxY)
}

// compareActive orders active edges by their x at the current scan line, then
// by inverse slope.
func compareActive(a, b *edge) int {
	if c := cmp.Compare(a.x, b.x); c != 0 {
		return c
	}
	return cmp.Compare(a.inverseSlope, b.inverseSlope)
}

// A PolyFill fills one polygon into a SpatialPixelMap. Edges are added with
// AddEdge, AddRing or AddPolygon, then Finalize must be called before Fill. A
// PolyFill can only be filled once.
type PolyFill struct {
	pixelMap   SpatialPixelMap
	edges      []edge
	active     []*edge
	globalMinY float64
	finalized  bool
	filled     bool
}

// NewPolyFill returns a new PolyFill that fills into pixelMap.
func NewPolyFill(pixelMap SpatialPixelMap) *PolyFill {
	return &PolyFill{
		pixelMap:   pixelMap,
		globalMinY: math.MaxFloat64,
	}
}

// AddEdge adds the edge from x1, y1 to x2, y2. Horizontal edges are ignored.
func (f *PolyFill) AddEdge(x1, x2, y1, y2 float64) error {
	if f.finalized {
		return ErrFinalized
	}
	for _, v := range []float64{x1, x2, y1, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidEdge
		}
	}
	if y1 == y2 {
		return nil
	}

	// The inverse slope is the same whichever endpoint comes first.
	e := edge{
		inverseSlope: (x2 - x1) / (y2 - y1),
	}
	if y1 < y2 {
		e.minY, e.maxY, e.x0 = y1, y2, x1
	} else {
		e.minY, e.maxY, e.x0 = y2, y1, x2
	}
	f.edges = append(f.edges, e)
	f.globalMinY = min(f.globalMinY, e.minY)
	return nil
}

// AddRing adds the edges of ring, closing it if needed.
func (f *PolyFill) AddRing(ring orb.Ring) error {
	if len(ring) < 2 {
		return nil
	}
	for i := 1; i < len(ring); i++ {
		if err := f.addSegment(ring[i-1], ring[i]); err != nil {
			return err
		}
	}
	if first, last := ring[0], ring[len(ring)-1]; first != last {
		return f.addSegment(last, first)
	}
	return nil
}

// AddPolygon adds the edges of every ring of polygon. Holes are left unfilled
// by the even-odd rule.
func (f *PolyFill) AddPolygon(polygon orb.Polygon) error {
	for _, ring := range polygon {
		if err := f.AddRing(ring); err != nil {
			return err
		}
	}
	return nil
}

// Finalize sorts the edge table. No more edges can be added afterwards.
func (f *PolyFill) Finalize() {
	slices.SortFunc(f.edges, compareEdgeTable)
	f.finalized = true
}

// Fill sweeps the scan line across the polygon, setting the cells inside it to
// value. A polygon without non-horizontal edges fills nothing.
func (f *PolyFill) Fill(value byte) error {
	switch {
	case !f.finalized:
		return ErrNotFinalized
	case f.filled:
		return ErrFilled
	}
	f.filled = true

	if len(f.edges) == 0 {
		return nil
	}
	yStep := f.pixelMap.YStep()
	if !(yStep > 0) || math.IsInf(yStep, 0) {
		return ErrInvalidYStep
	}

	startY := f.pixelMap.DiscretizeY(f.globalMinY)
	y := startY
	line := 0
	next := 0
	for next < len(f.edges) || len(f.active) > 0 {
		if next < len(f.edges) && f.edges[next].minY <= y {
			e := &f.edges[next]
			next++
			// Edges that end before the scan line never cross one.
			if e.maxY <= y {
				continue
			}
			e.updateX(y)
			f.active = append(f.active, e)
			continue
		}

		f.fillLine(y, value)

		line++
		y = startY + float64(line)*yStep
		f.active = slices.DeleteFunc(f.active, func(e *edge) bool {
			return e.maxY <= y
		})
		for _, e := range f.active {
			e.updateX(y)
		}
	}
	return nil
}

// fillLine fills the runs between the active edges on scan line y.
func (f *PolyFill) fillLine(y float64, value byte) {
	scanLines.Inc()
	slices.SortFunc(f.active, compareActive)

	inside := false
	prevX := -math.MaxFloat64
	for _, e := range f.active {
		if e.x > prevX {
			if inside {
				f.pixelMap.FillLine(y, prevX, e.x, value)
				filledRuns.Inc()
			}
			inside = !inside
			prevX = e.x
		} else {
			// Active edges satisfy minY <= y < maxY, so a vertex shared by an
			// ending and a starting edge contributes only the starting one.
			// Edges left at the same x cross or overlap there, and each one
			// is a crossing.
			inside = !inside
		}
	}
}

func (f *PolyFill) addSegment(a, b orb.Point) error {
	return f.AddEdge(a.X(), b.X(), a.Y(), b.Y())
}
