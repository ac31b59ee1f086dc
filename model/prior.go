package model

import (
	"math"

	"github.com/pkg/errors"
)

// Prior holds the hyperparameters of the conjugate pair
//
//	theta  ~ Normal(Mu0, Tau20)
//	sigma2 ~ InverseGamma(Nu0/2, Nu0*Sigma20/2)
//
// They are fixed for the lifetime of a run.
type Prior struct {
	Mu0     float64 `json:"mu0"`      // prior mean of theta
	Tau20   float64 `json:"tau2_0"`   // prior variance of theta
	Sigma20 float64 `json:"sigma2_0"` // prior scale of sigma2
	Nu0     float64 `json:"nu0"`      // prior degrees of freedom of sigma2
}

// Check returns an error if the hyperparameters do not define proper priors
func (p Prior) Check() error {
	if math.IsNaN(p.Mu0) || math.IsInf(p.Mu0, 0) {
		return errors.Wrapf(ErrInvalidData, "mu0 must be finite, have %v", p.Mu0)
	}

	positive := []struct {
		name string
		val  float64
	}{
		{"tau2_0", p.Tau20},
		{"sigma2_0", p.Sigma20},
		{"nu0", p.Nu0},
	}
	for _, pv := range positive {
		if !(pv.val > 0) || math.IsInf(pv.val, 0) {
			return errors.Wrapf(ErrInvalidData, "%s must be positive and finite, have %v", pv.name, pv.val)
		}
	}

	return nil
}
