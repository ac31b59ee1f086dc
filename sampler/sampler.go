package sampler

import (
	"github.com/pkg/errors"
)

// ErrInvalidArgument is the cause of every failed precondition. It is
// returned before any draw is made, and no partial output is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// A Sampler advances a Markov chain over (theta, sigma2) one joint draw at a
// time.
type Sampler interface {
	State() (theta float64, sigma2 float64)
	Sample() (theta float64, sigma2 float64)
}

// Observer is called after each completed draw s of a chain.
type Observer func(s int, theta float64, sigma2 float64)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// argError reports a failed precondition found by another package. It is
// ErrInvalidArgument and still unwraps to the original cause.
type argError struct {
	cause error
}

func (e *argError) Error() string { return e.cause.Error() + ": " + ErrInvalidArgument.Error() }
func (e *argError) Unwrap() error { return e.cause }
func (e *argError) Is(target error) bool { return target == ErrInvalidArgument }

func invalidCause(err error) error {
	return errors.WithStack(&argError{cause: err})
}
