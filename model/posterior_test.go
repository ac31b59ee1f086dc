package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosteriorAppend(t *testing.T) {
	assert := assert.New(t)

	p := NewPosterior(3)
	assert.Equal(0, p.Len())
	assert.Equal(3, cap(p.Theta))

	p.Append(1.0, 2.0)
	p.Append(1.5, 0.5)
	assert.Equal(2, p.Len())
	assert.NoError(p.Check())

	theta, sigma2 := p.Draw(1)
	assert.Equal(1.5, theta)
	assert.Equal(0.5, sigma2)

	p.Sigma2[0] = 0
	assert.Error(p.Check())

	p.Sigma2 = p.Sigma2[:1]
	assert.Error(p.Check())
}

func TestPosteriorJSON(t *testing.T) {
	assert := assert.New(t)

	p := NewPosterior(2)
	p.Append(3.0, 2.5)
	p.Append(2.75, 1.25)

	data, err := json.Marshal(p)
	assert.NoError(err)
	assert.JSONEq(`{"theta":[3,2.75],"sigma2":[2.5,1.25]}`, string(data))
}

func TestPosteriorSummarize(t *testing.T) {
	assert := assert.New(t)

	_, _, err := NewPosterior(0).Summarize()
	assert.Error(err)

	one := NewPosterior(1)
	one.Append(3.0, 2.5)
	th, s2, err := one.Summarize()
	assert.NoError(err)
	assert.Equal(3.0, th.Mean)
	assert.Equal(0.0, th.StdDev)
	assert.Equal(3.0, th.Median)
	assert.Equal(2.5, s2.Q975)

	p := NewPosterior(101)
	for i := 0; i <= 100; i++ {
		p.Append(float64(i), float64(i+1))
	}
	th, s2, err = p.Summarize()
	assert.NoError(err)
	assert.InDelta(50.0, th.Mean, 1e-12)
	assert.InDelta(51.0, s2.Mean, 1e-12)
	assert.InDelta(50.0, th.Median, 1e-12)
	assert.True(th.Q025 <= 3.0)
	assert.True(th.Q975 >= 97.0)
	assert.True(th.StdDev > 29.0 && th.StdDev < 30.0)
}
