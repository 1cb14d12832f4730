// Package blockarea rasterizes areas that routes must avoid.
package blockarea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/twpayne/go-terrain"
	"github.com/twpayne/go-terrain/scanline"
)

const blocked byte = 1

var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// A BlockArea is a mask of blocked cells. Points are longitude, latitude.
type BlockArea struct {
	grid *scanline.Grid
}

// New returns a new BlockArea covering bound with cols x rows cells.
func New(bound orb.Bound, cols, rows int) *BlockArea {
	return &BlockArea{
		grid: scanline.NewGrid(bound, cols, rows),
	}
}

// AddPolygon blocks the cells inside polygon.
func (b *BlockArea) AddPolygon(polygon orb.Polygon) error {
	fill := scanline.NewPolyFill(b.grid)
	if err := fill.AddPolygon(polygon); err != nil {
		return err
	}
	fill.Finalize()
	if err := fill.Fill(blocked); err != nil {
		return err
	}
	if logger := terrain.Logger(); logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("blocked polygon", "rings", len(polygon), "blockedCells", b.BlockedCells())
	}
	return nil
}

// AddGeometry blocks the cells inside geometry, which must be a polygon, a
// multi-polygon, a ring or a bound.
func (b *BlockArea) AddGeometry(geometry orb.Geometry) error {
	switch g := geometry.(type) {
	case orb.Polygon:
		return b.AddPolygon(g)
	case orb.MultiPolygon:
		for _, polygon := range g {
			if err := b.AddPolygon(polygon); err != nil {
				return err
			}
		}
		return nil
	case orb.Ring:
		return b.AddPolygon(orb.Polygon{g})
	case orb.Bound:
		return b.AddPolygon(g.ToPolygon())
	default:
		return fmt.Errorf("%T: %w", geometry, ErrUnsupportedGeometry)
	}
}

// AddFeatureCollection blocks the cells inside every feature of fc.
func (b *BlockArea) AddFeatureCollection(fc *geojson.FeatureCollection) error {
	for i, feature := range fc.Features {
		if err := b.AddGeometry(feature.Geometry); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return nil
}

// Contains returns whether point is in a blocked cell.
func (b *BlockArea) Contains(point orb.Point) bool {
	value, ok := b.grid.At(point)
	return ok && value == blocked
}

// IntersectsLine returns whether any segment of lineString passes through a
// blocked cell.
func (b *BlockArea) IntersectsLine(lineString orb.LineString) bool {
	if len(lineString) == 1 {
		return b.Contains(lineString[0])
	}
	for i := 1; i < len(lineString); i++ {
		intersects := false
		b.grid.WalkSegment(lineString[i-1], lineString[i], func(col, row int) bool {
			intersects = b.grid.Value(col, row) == blocked
			return !intersects
		})
		if intersects {
			return true
		}
	}
	return false
}

// BlockedCells returns the number of blocked cells.
func (b *BlockArea) BlockedCells() int {
	return b.grid.CellCount(blocked)
}

// Grid returns the grid holding b's mask.
func (b *BlockArea) Grid() *scanline.Grid {
	return b.grid
}
