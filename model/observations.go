package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidData is the cause of every validation failure in this package.
var ErrInvalidData = errors.New("invalid data")

// Observations is an immutable vector of i.i.d. real observations. The
// sample mean and unbiased variance are computed once at construction.
type Observations struct {
	y    []float64
	mean float64
	vari float64
}

// NewObservations copies and validates y. At least two finite values are
// required, and they may not all be equal: a zero sample variance would
// start the chain at sigma2 = 0.
func NewObservations(y []float64) (*Observations, error) {
	if len(y) < 2 {
		return nil, errors.Wrapf(ErrInvalidData, "need at least 2 observations, have %d", len(y))
	}

	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrInvalidData, "observation %d is not finite (%v)", i, v)
		}
	}

	cp := make([]float64, len(y))
	copy(cp, y)

	mean, vari := stat.MeanVariance(cp, nil)
	if !(vari > 0) || math.IsInf(vari, 0) {
		return nil, errors.Wrapf(ErrInvalidData, "sample variance must be positive and finite, have %v", vari)
	}

	return &Observations{
		y:    cp,
		mean: mean,
		vari: vari,
	}, nil
}

// Len is n
func (o *Observations) Len() int {
	return len(o.y)
}

// Values returns a copy of the observations
func (o *Observations) Values() []float64 {
	cp := make([]float64, len(o.y))
	copy(cp, o.y)
	return cp
}

// Mean is the sample mean
func (o *Observations) Mean() float64 {
	return o.mean
}

// Variance is the unbiased (n-1) sample variance
func (o *Observations) Variance() float64 {
	return o.vari
}

// SumSquares returns the sum of squared deviations of the observations
// around theta.
func (o *Observations) SumSquares(theta float64) float64 {
	ss := 0.0
	for _, v := range o.y {
		d := v - theta
		ss += d * d
	}
	return ss
}
