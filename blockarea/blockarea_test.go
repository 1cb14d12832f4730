package blockarea_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/twpayne/go-terrain"
	"github.com/twpayne/go-terrain/blockarea"
)

func TestBlockArea_PolygonWithHole(t *testing.T) {
	b := blockarea.New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{8, 8}}, 8, 8)
	assert.NoError(t, b.AddPolygon(orb.Polygon{
		{{0, 0}, {8, 0}, {8, 8}, {0, 8}, {0, 0}},
		{{2, 2}, {6, 2}, {6, 6}, {2, 6}, {2, 2}},
	}))
	assert.Equal(t, 48, b.BlockedCells())

	for _, tc := range []struct {
		point    orb.Point
		expected bool
	}{
		{point: orb.Point{1, 4}, expected: true},
		{point: orb.Point{4, 4}, expected: false},
		{point: orb.Point{7.5, 7.5}, expected: true},
		{point: orb.Point{9, 9}, expected: false},
	} {
		assert.Equal(t, tc.expected, b.Contains(tc.point))
	}

	assert.True(t, b.IntersectsLine(orb.LineString{{4, 4}, {4, 5}, {1, 5}}))
	assert.False(t, b.IntersectsLine(orb.LineString{{3, 3}, {5, 5}}))
}

func TestBlockArea_AddGeometry(t *testing.T) {
	b := blockarea.New(orb.Bound{Min: orb.Point{11, 49}, Max: orb.Point{12, 50}}, 4, 4)
	assert.NoError(t, b.AddGeometry(orb.Bound{Min: orb.Point{11, 49}, Max: orb.Point{11.5, 49.5}}))
	assert.Equal(t, 4, b.BlockedCells())
	assert.True(t, b.Contains(orb.Point{11.25, 49.25}))
	assert.False(t, b.Contains(orb.Point{11.75, 49.75}))

	assert.IsError(t, b.AddGeometry(orb.Point{11, 49}), blockarea.ErrUnsupportedGeometry)
}

func TestBlockArea_AddFeatureCollection(t *testing.T) {
	fc, err := geojson.UnmarshalFeatureCollection([]byte(`{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"properties": {},
				"geometry": {
					"type": "Polygon",
					"coordinates": [[[0, 0], [2, 0], [2, 2], [0, 2], [0, 0]]]
				}
			},
			{
				"type": "Feature",
				"properties": {},
				"geometry": {
					"type": "MultiPolygon",
					"coordinates": [[[[4, 4], [6, 4], [6, 6], [4, 6], [4, 4]]]]
				}
			}
		]
	}`))
	assert.NoError(t, err)

	b := blockarea.New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{8, 8}}, 8, 8)
	assert.NoError(t, b.AddFeatureCollection(fc))
	assert.Equal(t, 8, b.BlockedCells())
	assert.True(t, b.Contains(orb.Point{1, 1}))
	assert.True(t, b.Contains(orb.Point{5, 5}))
	assert.False(t, b.Contains(orb.Point{3, 3}))
}

func TestBlockArea_IntersectsLine(t *testing.T) {
	b := blockarea.New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{8, 8}}, 8, 8)
	assert.NoError(t, b.AddGeometry(orb.Bound{Min: orb.Point{2, 2}, Max: orb.Point{6, 6}}))
	assert.Equal(t, 16, b.BlockedCells())
	cols, rows := b.Grid().Size()
	assert.Equal(t, 8, cols)
	assert.Equal(t, 8, rows)

	for _, tc := range []struct {
		name       string
		lineString orb.LineString
		expected   bool
	}{
		{
			name:       "straight_through",
			lineString: orb.LineString{{0, 4}, {8, 4}},
			expected:   true,
		},
		{
			name:       "diagonal_through",
			lineString: orb.LineString{{0, 7.5}, {7.5, 0}},
			expected:   true,
		},
		{
			name:       "from_outside_the_grid",
			lineString: orb.LineString{{4, -10}, {4, 10}},
			expected:   true,
		},
		{
			name:       "below",
			lineString: orb.LineString{{0, 0.5}, {8, 0.5}},
			expected:   false,
		},
		{
			name:       "around",
			lineString: orb.LineString{{1, 1}, {1, 7}, {7, 7}},
			expected:   false,
		},
		{
			name:       "point_inside",
			lineString: orb.LineString{{4, 4}},
			expected:   true,
		},
		{
			name:       "point_outside",
			lineString: orb.LineString{{0, 0}},
			expected:   false,
		},
		{
			name:     "empty",
			expected: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, b.IntersectsLine(tc.lineString))
		})
	}
}

func TestBlockArea_ThinPolygon(t *testing.T) {
	b := blockarea.New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{8, 8}}, 8, 8)
	assert.NoError(t, b.AddGeometry(orb.Bound{Min: orb.Point{1, 1.2}, Max: orb.Point{3, 1.8}}))
	assert.Equal(t, 2, b.BlockedCells())
	assert.True(t, b.Contains(orb.Point{2, 1.5}))

	b = blockarea.New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{8, 8}}, 8, 8)
	assert.NoError(t, b.AddGeometry(orb.Bound{Min: orb.Point{1, 1.5}, Max: orb.Point{3, 3.5}}))
	assert.True(t, b.Contains(orb.Point{2, 1.7}))
	assert.True(t, b.Contains(orb.Point{2, 2.5}))
	assert.False(t, b.Contains(orb.Point{2, 3.3}))
}

func TestBlockArea_Logging(t *testing.T) {
	var buffer bytes.Buffer
	terrain.SetLogger(slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() {
		terrain.SetLogger(nil)
	})

	b := blockarea.New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{8, 8}}, 8, 8)
	assert.NoError(t, b.AddGeometry(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}))
	assert.Contains(t, buffer.String(), "blockedCells=4")

	terrain.SetLogger(nil)
	buffer.Reset()
	assert.NoError(t, b.AddGeometry(orb.Bound{Min: orb.Point{4, 4}, Max: orb.Point{6, 6}}))
	assert.Equal(t, "", buffer.String())
	assert.Equal(t, 8, b.BlockedCells())
}
