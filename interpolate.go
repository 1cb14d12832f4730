package terrain

// Lerp linearly interpolates between q1 at x1 and q2 at x2.
func Lerp(x, x1, x2, q1, q2 float64) float64 {
	return ((x2-x)/(x2-x1))*q1 + ((x-x1)/(x2-x1))*q2
}

// BiLerp bilinearly interpolates at x, y between q11 at (x1, y1), q12 at (x1,
// y2), q21 at (x2, y1) and q22 at (x2, y2). It interpolates along x first,
// then along y.
func BiLerp(x, y, q11, q12, q21, q22, x1, x2, y1, y2 float64) float64 {
	r1 := Lerp(x, x1, x2, q11, q21)
	r2 := Lerp(x, x1, x2, q12, q22)
	return Lerp(y, y1, y2, r1, r2)
}
