package glove

import (
	"errors"
	"fmt"
	"math"

	"github.com/viterin/vek"
)

// ErrInvalidCount is returned when a non-positive co-occurrence count
// reaches the loss. The logarithm of such a count is undefined, and a
// default is never substituted: a bad count means the caller's matrix is
// malformed.
var ErrInvalidCount = errors.New("glove: co-occurrence count must be positive")

// Parameters supplies externally owned embedding vectors and bias scalars
// for both roles a word can play. Vectors returned for the same batch must
// share one dimensionality.
type Parameters interface {
	FocalVector(id int) []float64
	ContextVector(id int) []float64
	FocalBias(id int) float64
	ContextBias(id int) float64
}

// weightFactor is f(x) from equation 9 of the paper: sub-linear growth
// below the xMax cutoff, saturating at exactly 1 from xMax upward.
func weightFactor(x, xMax, alpha float64) float64 {
	if x < xMax {
		return math.Pow(x/xMax, alpha)
	}
	return 1.0
}

// WeightedLoss computes the GloVe objective over parallel batches of focal
// ids, context ids, and co-occurrence counts:
//
//	sum_i  f(x_i) * (w·w̃ + b + b̃ + log x_i)²
//
// Counts must be strictly positive; a zero or negative count fails with
// ErrInvalidCount rather than producing a non-finite result. Pairs are
// independent, so the total does not depend on batch order.
func WeightedLoss(params Parameters, focal, context []int, counts []float64, xMax, alpha float64) (float64, error) {
	if len(focal) != len(context) || len(focal) != len(counts) {
		return 0, fmt.Errorf("glove: batch length mismatch: %d focal, %d context, %d counts",
			len(focal), len(context), len(counts))
	}

	total := 0.0
	for i, x := range counts {
		if x <= 0 {
			return 0, fmt.Errorf("%w: got %v for pair (%d, %d)", ErrInvalidCount, x, focal[i], context[i])
		}
		dot := vek.Dot(params.FocalVector(focal[i]), params.ContextVector(context[i]))
		residual := dot + params.FocalBias(focal[i]) + params.ContextBias(context[i]) + math.Log(x)
		total += weightFactor(x, xMax, alpha) * residual * residual
	}
	return total, nil
}
