// Package terrain answers height queries from tiled digital elevation models.
package terrain

// A TileCoord is the south-west corner of a tile in integer degrees.
type TileCoord struct {
	Lat int
	Lon int
}
