package terrain_test

import (
	"math"
	"testing"
	"testing/fstest"

	"github.com/alecthomas/assert/v2"
	"github.com/paulmach/orb"

	"github.com/twpayne/go-terrain"
)

func hgtBytes(width int, sample func(row, col int) int16) []byte {
	samples := terrain.NewByteSampleStore(width)
	for row := range width {
		for col := range width {
			samples.SetInt16(2*(row*width+col), sample(row, col))
		}
	}
	return samples.Bytes()
}

func TestSRTMFilename(t *testing.T) {
	for _, tc := range []struct {
		tileCoord terrain.TileCoord
		expected  string
	}{
		{tileCoord: terrain.TileCoord{Lat: 49, Lon: 11}, expected: "N49E011.hgt"},
		{tileCoord: terrain.TileCoord{Lat: 0, Lon: 0}, expected: "N00E000.hgt"},
		{tileCoord: terrain.TileCoord{Lat: -1, Lon: -1}, expected: "S01W001.hgt"},
		{tileCoord: terrain.TileCoord{Lat: -34, Lon: 151}, expected: "S34E151.hgt"},
		{tileCoord: terrain.TileCoord{Lat: 36, Lon: -118}, expected: "N36W118.hgt"},
	} {
		assert.Equal(t, tc.expected, terrain.SRTMFilename(tc.tileCoord))
	}
}

func TestSRTM(t *testing.T) {
	fsys := fstest.MapFS{
		"N49E011.hgt": &fstest.MapFile{Data: hgtBytes(4, rowCol)},
		"S01W001.hgt": &fstest.MapFile{Data: hgtBytes(2, func(row, col int) int16 {
			return 100
		})},
	}
	srtm, err := terrain.NewSRTM(fsys)
	assert.NoError(t, err)

	assert.Equal(t, terrain.TileCoord{Lat: -1, Lon: -1}, srtm.TileCoord(-0.5, -0.5))
	assert.Equal(t, terrain.TileCoord{Lat: 49, Lon: 11}, srtm.TileCoord(49.5, 11.999))

	height, err := srtm.Height(t.Context(), 49.625, 11.5)
	assert.NoError(t, err)
	assert.Equal(t, 11.5, height)

	heights, err := srtm.Heights(t.Context(), [][]float64{
		{11.375, 49.625},
		{12.5, 49.5},
		{-0.5, -0.5},
		{11.5, 49.5},
		{math.NaN(), 49.5},
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, len(heights))
	assert.Equal(t, []float64{11, 0, 100, 16.5}, heights[:4])
	assert.True(t, math.IsNaN(heights[4]))

	profile, err := srtm.Profile(t.Context(), orb.LineString{
		{11.375, 49.625},
		{11.5, 49.625},
		{11.625, 49.625},
	})
	assert.NoError(t, err)
	assert.Equal(t, []float64{11, 11.5, 12}, profile)
}

func TestSRTM_InvalidTile(t *testing.T) {
	fsys := fstest.MapFS{
		"N49E011.hgt": &fstest.MapFile{Data: []byte{0, 1, 2}},
		"N50E011.hgt": &fstest.MapFile{Data: make([]byte, 6)},
	}
	srtm, err := terrain.NewSRTM(fsys)
	assert.NoError(t, err)

	_, err = srtm.Height(t.Context(), 49.5, 11.5)
	assert.Error(t, err)

	_, err = srtm.Height(t.Context(), 50.5, 11.5)
	assert.Error(t, err)
}
