package model

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Posterior is the output of a sampler run: two index-aligned sequences of
// draws. Theta[s] and Sigma2[s] are the chain's joint state at step s.
type Posterior struct {
	Theta  []float64 `json:"theta"`
	Sigma2 []float64 `json:"sigma2"`
}

// Largest up-front allocation; longer chains grow as they go
const maxPrealloc = 1 << 16

// NewPosterior returns an empty Posterior expecting S draws
func NewPosterior(S int) *Posterior {
	size := S
	if size > maxPrealloc {
		size = maxPrealloc
	}
	if size < 0 {
		size = 0
	}
	return &Posterior{
		Theta:  make([]float64, 0, size),
		Sigma2: make([]float64, 0, size),
	}
}

// Append records one joint draw. Both sequences always grow together.
func (p *Posterior) Append(theta float64, sigma2 float64) {
	p.Theta = append(p.Theta, theta)
	p.Sigma2 = append(p.Sigma2, sigma2)
}

// Len is the number of joint draws
func (p *Posterior) Len() int {
	return len(p.Theta)
}

// Draw returns the joint draw at step s
func (p *Posterior) Draw(s int) (theta float64, sigma2 float64) {
	return p.Theta[s], p.Sigma2[s]
}

// Check insures the sequences are aligned and every variance draw is positive
func (p *Posterior) Check() error {
	if len(p.Theta) != len(p.Sigma2) {
		return errors.Errorf("Posterior theta count %d != sigma2 count %d", len(p.Theta), len(p.Sigma2))
	}
	for s, v := range p.Sigma2 {
		if !(v > 0) {
			return errors.Errorf("Posterior sigma2[%d] = %v is not positive", s, v)
		}
	}
	return nil
}

// Summary describes the marginal draws of one parameter
type Summary struct {
	Mean   float64
	StdDev float64
	Q025   float64
	Median float64
	Q975   float64
}

// Summarize returns a Summary for theta and sigma2 over every draw held.
func (p *Posterior) Summarize() (theta Summary, sigma2 Summary, err error) {
	if p.Len() < 1 {
		return theta, sigma2, errors.New("Can not summarize an empty posterior")
	}
	if err = p.Check(); err != nil {
		return theta, sigma2, err
	}

	return summarize(p.Theta), summarize(p.Sigma2), nil
}

func summarize(x []float64) Summary {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	s := Summary{
		Q025:   stat.Quantile(0.025, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q975:   stat.Quantile(0.975, stat.Empirical, sorted, nil),
	}

	if len(x) < 2 {
		s.Mean = x[0]
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	return s
}
