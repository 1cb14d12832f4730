package terrain_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-terrain"
)

func TestLerp(t *testing.T) {
	for _, tc := range []struct {
		x, x1, x2, q1, q2 float64
		expected          float64
	}{
		{x: 0, x1: 0, x2: 10, q1: 0, q2: 100, expected: 0},
		{x: 10, x1: 0, x2: 10, q1: 0, q2: 100, expected: 100},
		{x: 2.5, x1: 0, x2: 10, q1: 0, q2: 100, expected: 25},
		{x: 1.5, x1: 1, x2: 2, q1: 4, q2: 2, expected: 3},
		{x: 1, x1: 1, x2: 2, q1: 7, q2: 7, expected: 7},
	} {
		assert.Equal(t, tc.expected, terrain.Lerp(tc.x, tc.x1, tc.x2, tc.q1, tc.q2))
	}
}

func TestBiLerp(t *testing.T) {
	// q11 q21
	// q12 q22
	q11, q21, q12, q22 := 0.0, 1.0, 2.0, 3.0
	for _, tc := range []struct {
		coords   [][]float64
		expected []float64
	}{
		{
			coords: [][]float64{
				{0, 0},
				{10, 0},
				{0, 10},
				{10, 10},
				{5, 5},
				{5, 0},
				{0, 5},
				{10, 5},
				{5, 10},
			},
			expected: []float64{
				0,
				1,
				2,
				3,
				1.5,
				0.5,
				1,
				2,
				2.5,
			},
		},
	} {
		actual := make([]float64, len(tc.coords))
		for i, coord := range tc.coords {
			actual[i] = terrain.BiLerp(coord[0], coord[1], q11, q12, q21, q22, 0, 10, 0, 10)
		}
		assert.Equal(t, tc.expected, actual)
	}
}
