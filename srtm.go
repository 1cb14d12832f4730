package terrain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
)

const (
	srtmPrecision      = 1e7
	seaLevelTileWidth  = 10
	srtmDegreesPerTile = 1
)

var errNotSquare = errors.New("samples do not form a square grid")

// NewSRTM returns a HeightTileSet that reads SRTM .hgt tiles from fsys. Tiles
// that are absent from fsys are treated as being at sea level.
func NewSRTM(fsys fs.FS, options ...HeightTileSetOption) (*HeightTileSet, error) {
	return NewHeightTileSet(slices.Concat(
		[]HeightTileSetOption{
			WithDegrees(srtmDegreesPerTile),
			WithTileLoaderFunc(SRTMTileLoader(fsys)),
		},
		options,
	)...)
}

// SRTMFilename returns the filename of the SRTM tile at tileCoord, for example
// N49E011.hgt.
func SRTMFilename(tileCoord TileCoord) string {
	ns, lat := 'N', tileCoord.Lat
	if lat < 0 {
		ns, lat = 'S', -lat
	}
	ew, lon := 'E', tileCoord.Lon
	if lon < 0 {
		ew, lon = 'W', -lon
	}
	return fmt.Sprintf("%c%02d%c%03d.hgt", ns, lat, ew, lon)
}

// SRTMTileLoader returns a TileLoaderFunc that reads SRTM .hgt tiles from fsys.
func SRTMTileLoader(fsys fs.FS) TileLoaderFunc {
	return func(ctx context.Context, tileCoord TileCoord) (*HeightTile, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		filename := SRTMFilename(tileCoord)
		data, err := fs.ReadFile(fsys, filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			Logger().Debug("no tile, assuming sea level", "filename", filename)
			return newSeaLevelTile(tileCoord)
		case err != nil:
			return nil, err
		}

		samples, err := NewByteSampleStoreFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		width, ok := samples.Width()
		if !ok {
			return nil, fmt.Errorf("%s: %w", filename, errNotSquare)
		}

		tile := NewHeightTile(tileCoord.Lat, tileCoord.Lon, width, srtmPrecision, srtmDegreesPerTile)
		if err := tile.SetSampleStore(samples); err != nil {
			return nil, err
		}
		return tile, nil
	}
}

// newSeaLevelTile returns a small tile at tileCoord flagged as sea level.
func newSeaLevelTile(tileCoord TileCoord) (*HeightTile, error) {
	tile := NewHeightTile(tileCoord.Lat, tileCoord.Lon, seaLevelTileWidth, srtmPrecision, srtmDegreesPerTile)
	if err := tile.SetSampleStore(NewByteSampleStore(seaLevelTileWidth)); err != nil {
		return nil, err
	}
	if err := tile.SetSeaLevel(true); err != nil {
		return nil, err
	}
	return tile, nil
}
