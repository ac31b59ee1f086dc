package model

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestObservationsStats(t *testing.T) {
	assert := assert.New(t)

	src := []float64{1.0, 2.0, 3.0, 4.0, 5.0}
	obs, err := NewObservations(src)
	assert.NoError(err)

	assert.Equal(5, obs.Len())
	assert.InDelta(3.0, obs.Mean(), 1e-12)
	assert.InDelta(2.5, obs.Variance(), 1e-12)
	assert.InDelta(10.0, obs.SumSquares(3.0), 1e-12)
	assert.InDelta(15.0, obs.SumSquares(2.0), 1e-12)

	// Immutable: neither the source nor the copy we hand out leak in
	src[0] = 100.0
	vals := obs.Values()
	vals[1] = 100.0
	assert.Equal([]float64{1.0, 2.0, 3.0, 4.0, 5.0}, obs.Values())
	assert.InDelta(3.0, obs.Mean(), 1e-12)
}

func TestObservationsInvalid(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		name string
		y    []float64
	}{
		{"nil", nil},
		{"empty", []float64{}},
		{"single", []float64{1.0}},
		{"nan", []float64{1.0, math.NaN(), 2.0}},
		{"inf", []float64{1.0, math.Inf(1)}},
		{"neg-inf", []float64{math.Inf(-1), 1.0}},
		{"zero-variance", []float64{4.2, 4.2, 4.2}},
		{"overflow-variance", []float64{-math.MaxFloat64, math.MaxFloat64}},
	}

	for _, c := range cases {
		obs, err := NewObservations(c.y)
		assert.Nil(obs, c.name)
		assert.Error(err, c.name)
		assert.True(errors.Is(err, ErrInvalidData), c.name)
	}
}

func TestPriorCheck(t *testing.T) {
	assert := assert.New(t)

	good := Prior{Mu0: 0, Tau20: 10, Sigma20: 1, Nu0: 1}
	assert.NoError(good.Check())

	bad := []Prior{
		{Mu0: math.NaN(), Tau20: 10, Sigma20: 1, Nu0: 1},
		{Mu0: 0, Tau20: 0, Sigma20: 1, Nu0: 1},
		{Mu0: 0, Tau20: -1, Sigma20: 1, Nu0: 1},
		{Mu0: 0, Tau20: math.Inf(1), Sigma20: 1, Nu0: 1},
		{Mu0: 0, Tau20: 10, Sigma20: 0, Nu0: 1},
		{Mu0: 0, Tau20: 10, Sigma20: 1, Nu0: 0},
		{Mu0: 0, Tau20: 10, Sigma20: 1, Nu0: math.NaN()},
	}
	for i, p := range bad {
		err := p.Check()
		assert.Error(err, "case %d", i)
		assert.True(errors.Is(err, ErrInvalidData), "case %d", i)
	}
}
