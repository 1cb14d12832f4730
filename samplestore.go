package terrain

import (
	"encoding/binary"
	"errors"
	"math"
)

// NoData is the sample value meaning that no measurement is available.
const NoData = math.MinInt16

// headerSlots is the number of header slots in a SampleStore.
const headerSlots = 2

var errOddLength = errors.New("odd sample data length")

// A SampleStore is a fixed-stride array of signed 16-bit samples with two
// header slots. Offsets are in bytes, so the sample at row, col of a grid of
// the given width is at offset 2*(row*width+col).
type SampleStore interface {
	Int16(offset int) int16
	SetInt16(offset int, value int16)
	Header(slot int) int
	SetHeader(slot, value int)
}

// A ByteSampleStore is a SampleStore backed by a big-endian byte slice, the
// layout of SRTM .hgt files.
type ByteSampleStore struct {
	data   []byte
	header [headerSlots]int
}

// NewByteSampleStore returns a new zeroed ByteSampleStore for a square grid of
// width x width samples.
func NewByteSampleStore(width int) *ByteSampleStore {
	return &ByteSampleStore{
		data: make([]byte, 2*width*width),
	}
}

// NewByteSampleStoreFromBytes returns a new ByteSampleStore that uses data as
// its samples. data is not copied.
func NewByteSampleStoreFromBytes(data []byte) (*ByteSampleStore, error) {
	if len(data)%2 != 0 {
		return nil, errOddLength
	}
	return &ByteSampleStore{
		data: data,
	}, nil
}

// Bytes returns the raw sample bytes of s.
func (s *ByteSampleStore) Bytes() []byte {
	return s.data
}

// Len returns the number of samples in s.
func (s *ByteSampleStore) Len() int {
	return len(s.data) / 2
}

// Width returns the width of the square grid held by s. It returns false if s
// does not hold a square number of samples.
func (s *ByteSampleStore) Width() (int, bool) {
	n := s.Len()
	width := int(math.Round(math.Sqrt(float64(n))))
	if width == 0 || width*width != n {
		return 0, false
	}
	return width, true
}

func (s *ByteSampleStore) Int16(offset int) int16 {
	return int16(binary.BigEndian.Uint16(s.data[offset : offset+2]))
}

func (s *ByteSampleStore) SetInt16(offset int, value int16) {
	binary.BigEndian.PutUint16(s.data[offset:offset+2], uint16(value))
}

func (s *ByteSampleStore) Header(slot int) int {
	return s.header[slot]
}

func (s *ByteSampleStore) SetHeader(slot, value int) {
	s.header[slot] = value
}
