// Package mathutil provides numeric helpers shared by the raster filters and
// the flow estimator.
package mathutil

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNotPositiveDefinite indicates a matrix that cannot be Cholesky factorized.
var ErrNotPositiveDefinite = errors.New("matrix is not positive definite")

// InverseSPD inverts a symmetric positive-definite matrix given as an
// n×n row-major slice. Only the upper triangle of a is read.
func InverseSPD(n int, a []float64) (*mat.SymDense, error) {
	if len(a) != n*n {
		return nil, fmt.Errorf("inverse: want %d elements, got %d", n*n, len(a))
	}

	sym := mat.NewSymDense(n, append([]float64(nil), a...))

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrNotPositiveDefinite
	}

	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, fmt.Errorf("inverse: %w", err)
	}
	return &inv, nil
}

// RoundHalfEven rounds to the nearest integer, ties to even. Window sizes
// derived from Gaussian sigmas are rounded this way.
func RoundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

// FloorInt returns ⌊v⌋ as an int.
func FloorInt(v float64) int {
	return int(math.Floor(v))
}
