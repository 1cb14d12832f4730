package terrain

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	missingTileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_missing_tile_cache_hits_total",
		Help: "The total number of hits on the missing tile cache",
	})
	missingTileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_missing_tile_cache_misses_total",
		Help: "The total number of misses on the missing tile cache",
	})
	heightTileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_height_tile_cache_hits_total",
		Help: "The total number of hits on the height tile cache",
	})
	heightTileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_height_tile_cache_misses_total",
		Help: "The total number of misses on the height tile cache",
	})
	heightTileCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrain_height_tile_cache_evictions_total",
		Help: "The total number of evictions from the height tile cache",
	})
)

var (
	errInvalidDegrees = errors.New("invalid degrees")
	errNoTileLoader   = errors.New("no tile loader")
)

// A TileLoaderFunc returns the populated tile at tileCoord. It returns an error
// matching fs.ErrNotExist if there is no such tile.
type TileLoaderFunc func(ctx context.Context, tileCoord TileCoord) (*HeightTile, error)

// A HeightTileSet routes height queries to the tiles that contain them.
type HeightTileSet struct {
	mutex           sync.Mutex
	degrees         int
	tileLoaderFunc  TileLoaderFunc
	missingTiles    sync.Map
	cacheSize       int
	heightTileCache *lru.Cache[TileCoord, *HeightTile]
}

// A HeightTileSetOption sets an option on a HeightTileSet.
type HeightTileSetOption func(*HeightTileSet)

// NewHeightTileSet returns a new HeightTileSet with the given options.
func NewHeightTileSet(options ...HeightTileSetOption) (*HeightTileSet, error) {
	s := &HeightTileSet{
		degrees:   1,
		cacheSize: 32,
	}
	for _, option := range options {
		option(s)
	}
	if s.degrees <= 0 {
		return nil, errInvalidDegrees
	}
	if s.tileLoaderFunc == nil {
		return nil, errNoTileLoader
	}

	var err error
	s.heightTileCache, err = lru.NewWithEvict(s.cacheSize, func(tileCoord TileCoord, _ *HeightTile) {
		Logger().Debug("evicted tile", "lat", tileCoord.Lat, "lon", tileCoord.Lon)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func WithCacheSize(cacheSize int) HeightTileSetOption {
	return func(s *HeightTileSet) {
		s.cacheSize = cacheSize
	}
}

// WithDegrees sets the angular size of each tile.
func WithDegrees(degrees int) HeightTileSetOption {
	return func(s *HeightTileSet) {
		s.degrees = degrees
	}
}

func WithTileLoaderFunc(tileLoaderFunc TileLoaderFunc) HeightTileSetOption {
	return func(s *HeightTileSet) {
		s.tileLoaderFunc = tileLoaderFunc
	}
}

// TileCoord returns the origin of the tile containing lat, lon.
func (s *HeightTileSet) TileCoord(lat, lon float64) TileCoord {
	degrees := float64(s.degrees)
	return TileCoord{
		Lat: s.degrees * int(math.Floor(lat/degrees)),
		Lon: s.degrees * int(math.Floor(lon/degrees)),
	}
}

// Height returns the height at lat, lon. Missing tiles and missing samples are
// represented by NaN. Sea level tiles have height 0.
func (s *HeightTileSet) Height(ctx context.Context, lat, lon float64) (float64, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return math.NaN(), nil
	}
	tile, err := s.getTileCached(ctx, s.TileCoord(lat, lon))
	if err != nil {
		return 0, err
	}
	return tileHeight(tile, lat, lon)
}

// Heights returns the heights at coords, which are longitude, latitude pairs.
// Coordinates with fewer than two values have height NaN. It is faster than
// calling [HeightTileSet.Height] for each coordinate.
func (s *HeightTileSet) Heights(ctx context.Context, coords [][]float64) ([]float64, error) {
	heights := make([]float64, len(coords))

	// Group indexes by tile coord.
	indexesByTileCoord := make(map[TileCoord][]int)
	for index, coord := range coords {
		if len(coord) < 2 {
			heights[index] = math.NaN()
			continue
		}
		lon, lat := coord[0], coord[1]
		if math.IsNaN(lat) || math.IsNaN(lon) {
			heights[index] = math.NaN()
			continue
		}
		tileCoord := s.TileCoord(lat, lon)
		indexesByTileCoord[tileCoord] = append(indexesByTileCoord[tileCoord], index)
	}

	// Populate heights one tile at a time.
	for tileCoord, indexes := range indexesByTileCoord {
		tile, err := s.getTileCached(ctx, tileCoord)
		if err != nil {
			return nil, err
		}
		for _, index := range indexes {
			heights[index], err = tileHeight(tile, coords[index][1], coords[index][0])
			if err != nil {
				return nil, err
			}
		}
	}

	return heights, nil
}

// Profile returns the heights at each point of lineString.
func (s *HeightTileSet) Profile(ctx context.Context, lineString orb.LineString) ([]float64, error) {
	coords := make([][]float64, len(lineString))
	for i := range lineString {
		coords[i] = lineString[i][:]
	}
	return s.Heights(ctx, coords)
}

// getTile loads the tile at tileCoord. It returns nil if there is no such
// tile.
func (s *HeightTileSet) getTile(ctx context.Context, tileCoord TileCoord) (*HeightTile, error) {
	switch tile, err := s.tileLoaderFunc(ctx, tileCoord); {
	case errors.Is(err, fs.ErrNotExist):
		s.missingTiles.Store(tileCoord, struct{}{})
		missingTileCacheMisses.Inc()
		return nil, nil
	case err != nil:
		Logger().Warn("failed to load tile", "lat", tileCoord.Lat, "lon", tileCoord.Lon, "err", err)
		return nil, err
	default:
		Logger().Debug("loaded tile", "lat", tileCoord.Lat, "lon", tileCoord.Lon, "width", tile.Width())
		return tile, nil
	}
}

// getTileCached returns the tile at tileCoord, using the cache if possible.
func (s *HeightTileSet) getTileCached(ctx context.Context, tileCoord TileCoord) (*HeightTile, error) {
	if _, ok := s.missingTiles.Load(tileCoord); ok {
		missingTileCacheHits.Inc()
		return nil, nil
	}

	if tile, ok := s.heightTileCache.Get(tileCoord); ok {
		heightTileCacheHits.Inc()
		return tile, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.missingTiles.Load(tileCoord); ok {
		missingTileCacheHits.Inc()
		return nil, nil
	}

	if tile, ok := s.heightTileCache.Get(tileCoord); ok {
		heightTileCacheHits.Inc()
		return tile, nil
	}

	heightTileCacheMisses.Inc()

	tile, err := s.getTile(ctx, tileCoord)
	if err != nil || tile == nil {
		return nil, err
	}

	if eviction := s.heightTileCache.Add(tileCoord, tile); eviction {
		heightTileCacheEvictions.Inc()
	}

	return tile, nil
}

// tileHeight returns the height at lat, lon in tile.
func tileHeight(tile *HeightTile, lat, lon float64) (float64, error) {
	switch {
	case tile == nil:
		return math.NaN(), nil
	case tile.IsSeaLevel():
		return 0, nil
	default:
		return tile.Height(lat, lon)
	}
}
