package sampler

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/CraigKelly/normgibbs/model"
)

// NormalGibbs samples the joint posterior of (theta, sigma2) for
// y ~ Normal(theta, sigma2) under the conjugate priors in model.Prior. Both
// full conditionals are closed form, so every draw is accepted.
//
// A NormalGibbs is not safe for concurrent use, and neither is its Source:
// independent chains need independent generators.
type NormalGibbs struct {
	src   rand.Source
	obs   *model.Observations
	prior model.Prior

	theta  float64
	sigma2 float64
}

// NewNormalGibbs validates its inputs and returns a sampler whose state is
// the deterministic starting point: the sample mean and unbiased sample
// variance of y.
func NewNormalGibbs(src rand.Source, y []float64, prior model.Prior) (*NormalGibbs, error) {
	if src == nil {
		return nil, invalid("no random source supplied")
	}

	obs, err := model.NewObservations(y)
	if err != nil {
		return nil, invalidCause(err)
	}

	if err = prior.Check(); err != nil {
		return nil, invalidCause(err)
	}

	g := &NormalGibbs{
		src:    src,
		obs:    obs,
		prior:  prior,
		theta:  obs.Mean(),
		sigma2: obs.Variance(),
	}
	return g, nil
}

// ThetaConditional returns the mean and variance of the Normal full
// conditional of theta given sigma2.
func (g *NormalGibbs) ThetaConditional(sigma2 float64) (mean float64, variance float64) {
	n := float64(g.obs.Len())
	p := g.prior

	variance = 1.0 / (1.0/p.Tau20 + n/sigma2)
	mean = (p.Mu0/p.Tau20 + n*g.obs.Mean()/sigma2) * variance
	return
}

// Sigma2Conditional returns the shape and rate of the Gamma distribution of
// 1/sigma2 given theta. The full conditional of sigma2 is the matching
// Inverse-Gamma.
func (g *NormalGibbs) Sigma2Conditional(theta float64) (shape float64, rate float64) {
	n := float64(g.obs.Len())
	p := g.prior

	nuN := p.Nu0 + n
	scaleN := p.Nu0*p.Sigma20 + g.obs.SumSquares(theta)
	return nuN / 2.0, scaleN / 2.0
}

// State returns the current joint state of the chain
func (g *NormalGibbs) State() (theta float64, sigma2 float64) {
	return g.theta, g.sigma2
}

// Sample performs one Gibbs iteration: theta is drawn given the current
// sigma2, then sigma2 is drawn given the new theta. The source is advanced
// by one Normal draw followed by one Gamma draw.
func (g *NormalGibbs) Sample() (theta float64, sigma2 float64) {
	mean, variance := g.ThetaConditional(g.sigma2)
	g.theta = distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance), Src: g.src}.Rand()

	shape, rate := g.Sigma2Conditional(g.theta)
	g.sigma2 = 1.0 / distuv.Gamma{Alpha: shape, Beta: rate, Src: g.src}.Rand()

	return g.theta, g.sigma2
}

// Chain records S joint draws. The current state is draw 0 and each further
// draw is one call to Sample. The context is checked between iterations:
// when it is done the draws completed so far are returned with its error.
// obs may be nil.
func (g *NormalGibbs) Chain(ctx context.Context, S int, obs Observer) (*model.Posterior, error) {
	if S < 1 {
		return nil, invalid("sample count must be at least 1, have %d", S)
	}

	post := model.NewPosterior(S)
	post.Append(g.theta, g.sigma2)
	if obs != nil {
		obs(0, g.theta, g.sigma2)
	}

	for s := 1; s < S; s++ {
		if err := ctx.Err(); err != nil {
			return post, errors.Wrapf(err, "chain stopped after %d of %d draws", post.Len(), S)
		}

		theta, sigma2 := g.Sample()
		post.Append(theta, sigma2)
		if obs != nil {
			obs(s, theta, sigma2)
		}
	}

	return post, nil
}

// Run draws S samples from the joint posterior of (theta, sigma2) given y
// and the prior, using src as the only source of randomness. All arguments
// are validated before any draw; a failure wraps ErrInvalidArgument.
func Run(ctx context.Context, src rand.Source, y []float64, S int, prior model.Prior) (*model.Posterior, error) {
	if S < 1 {
		return nil, invalid("sample count must be at least 1, have %d", S)
	}

	g, err := NewNormalGibbs(src, y, prior)
	if err != nil {
		return nil, err
	}

	return g.Chain(ctx, S, nil)
}
