// Package metric provides the vector similarity math used by the vector
// store. Implementations are portable Go; the data scales this module targets
// do not warrant SIMD specializations.
package metric

import (
	"errors"
	"math"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i] * b[i]
	}
	return ret
}

// Magnitude calculates the L2 length of v.
func Magnitude(v []float32) float32 {
	return float32(math.Sqrt(float64(Dot(v, v))))
}

// CosineSimilarity calculates the cosine similarity between two vectors.
func CosineSimilarity(v1, v2 []float32) (float32, error) {
	if len(v1) != len(v2) {
		return 0, errors.New("vector sizes do not match")
	}

	magA := Magnitude(v1)
	magB := Magnitude(v2)

	// Avoid division by zero
	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return Dot(v1, v2) / (magA * magB), nil
}
