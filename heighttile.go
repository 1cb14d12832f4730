package terrain

import (
	"errors"
	"fmt"
	"math"
)

// seaLevelHeaderSlot is the header slot holding the sea level flag.
const seaLevelHeaderSlot = 0

var (
	ErrNoSampleStore       = errors.New("no sample store")
	ErrOutOfBounds         = errors.New("out of bounds")
	ErrSampleStoreAttached = errors.New("sample store already attached")
)

// A BoundaryError is returned when a coordinate is outside a tile. It matches
// ErrOutOfBounds.
type BoundaryError struct {
	Lat    float64
	Lon    float64
	Origin TileCoord
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%f,%f: not in tile %d,%d", e.Lat, e.Lon, e.Origin.Lat, e.Origin.Lon)
}

func (e *BoundaryError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// A HeightTile is a square grid of height samples covering degrees x degrees
// from its origin. The first row of samples is the northernmost one.
type HeightTile struct {
	origin      TileCoord
	width       int
	degrees     int
	lowerBound  float64
	higherBound float64
	samples     SampleStore
}

// NewHeightTile returns a new HeightTile with width x width samples. Queries
// are accepted up to 1/precision degrees outside the tile.
func NewHeightTile(originLat, originLon, width int, precision float64, degrees int) *HeightTile {
	return &HeightTile{
		origin: TileCoord{
			Lat: originLat,
			Lon: originLon,
		},
		width:       width,
		degrees:     degrees,
		lowerBound:  -1 / precision,
		higherBound: float64(degrees) + 1/precision,
	}
}

// SetSampleStore attaches samples to t. It can only be called once.
func (t *HeightTile) SetSampleStore(samples SampleStore) error {
	if t.samples != nil {
		return ErrSampleStoreAttached
	}
	t.samples = samples
	return nil
}

// SampleStore returns t's samples, or nil if none are attached.
func (t *HeightTile) SampleStore() SampleStore {
	return t.samples
}

// Origin returns t's origin.
func (t *HeightTile) Origin() TileCoord {
	return t.origin
}

// Width returns the number of samples per side of t.
func (t *HeightTile) Width() int {
	return t.width
}

// IsSeaLevel returns whether t is flagged as entirely at sea level.
func (t *HeightTile) IsSeaLevel() bool {
	if t.samples == nil {
		return false
	}
	return t.samples.Header(seaLevelHeaderSlot) == 1
}

// SetSeaLevel sets t's sea level flag.
func (t *HeightTile) SetSeaLevel(seaLevel bool) error {
	if t.samples == nil {
		return ErrNoSampleStore
	}
	value := 0
	if seaLevel {
		value = 1
	}
	t.samples.SetHeader(seaLevelHeaderSlot, value)
	return nil
}

// Height returns the height at lat, lon, bilinearly interpolated between the
// four nearest samples. It returns NaN if the sample of the cell containing
// lat, lon is missing. Neighbouring samples that are off the grid or missing
// are replaced by the cell's own sample, so heights degenerate to the raw
// sample at the edges of the tile.
func (t *HeightTile) Height(lat, lon float64) (float64, error) {
	deltaLat := math.Abs(lat - float64(t.origin.Lat))
	deltaLon := math.Abs(lon - float64(t.origin.Lon))
	if !(t.lowerBound <= deltaLat && deltaLat <= t.higherBound) ||
		!(t.lowerBound <= deltaLon && deltaLon <= t.higherBound) {
		return 0, &BoundaryError{Lat: lat, Lon: lon, Origin: t.origin}
	}
	if t.samples == nil {
		return 0, ErrNoSampleStore
	}

	// x increases eastwards and y increases northwards, both in cells.
	scale := float64(t.width) / float64(t.degrees)
	x := scale * deltaLon
	y := scale * deltaLat

	col := int(x)
	if col >= t.width {
		col = t.width - 1
		x = float64(col) + 0.5
	}
	row := t.width - 1 - int(y)
	if row < 0 {
		row = 0
		y = float64(t.width) - 0.5
	}

	value := t.samples.Int16(t.offset(row, col))
	if value == NoData {
		return math.NaN(), nil
	}
	fallback := float64(value)

	westCol, eastCol := col-1, col
	if x-float64(col) >= 0.5 {
		westCol, eastCol = col, col+1
	}
	southRow, northRow := row+1, row
	if y-float64(t.width-1-row) >= 0.5 {
		southRow, northRow = row, row-1
	}

	sw := t.sample(southRow, westCol, fallback)
	nw := t.sample(northRow, westCol, fallback)
	se := t.sample(southRow, eastCol, fallback)
	ne := t.sample(northRow, eastCol, fallback)

	// Sample centres lie half way across each cell.
	x1 := float64(westCol) + 0.5
	y1 := float64(t.width-1-southRow) + 0.5
	return BiLerp(x, y, sw, nw, se, ne, x1, x1+1, y1, y1+1), nil
}

func (t *HeightTile) String() string {
	return fmt.Sprintf("%d,%d", t.origin.Lat, t.origin.Lon)
}

// offset returns the byte offset of the sample at row, col.
func (t *HeightTile) offset(row, col int) int {
	return 2 * (row*t.width + col)
}

// sample returns the sample at row, col, or fallback if row, col is off the
// grid or the sample there is missing.
func (t *HeightTile) sample(row, col int, fallback float64) float64 {
	if row < 0 || t.width <= row || col < 0 || t.width <= col {
		return fallback
	}
	value := t.samples.Int16(t.offset(row, col))
	if value == NoData {
		return fallback
	}
	return float64(value)
}
