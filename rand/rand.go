package rand

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// A Generator uses a goroutine to populate batches of random numbers from a
// 64-bit Mersenne twister. Each Generator is a single independent stream:
// give every chain its own. It satisfies math/rand/v2.Source, so it can be
// handed directly to gonum (v0.16 and later) distributions.
type Generator struct {
	ch   chan uint64
	done chan struct{}
	stop sync.Once
}

// NewGenerator starts a new background PRNG based on the given seed
func NewGenerator(seed int64) (*Generator, error) {
	r := mt19937.New()
	r.Seed(seed)
	return start(r), nil
}

// NewGeneratorSlice starts a new background PRNG seeded from the given key,
// which is the canonical init_by_array seeding of MT19937-64.
func NewGeneratorSlice(key []uint64) (*Generator, error) {
	if len(key) < 1 {
		return nil, errors.New("At least one seed value is required")
	}

	r := mt19937.New()
	r.SeedFromSlice(key)
	return start(r), nil
}

func start(r *mt19937.MT19937) *Generator {
	numChan := make(chan uint64, 1024)
	done := make(chan struct{})

	go func() {
		defer close(numChan)
		for {
			v := r.Uint64()
			select {
			case numChan <- v:
			case <-done:
				return
			}
		}
	}()

	return &Generator{
		ch:   numChan,
		done: done,
	}
}

// Close stops the background goroutine. The Generator must not be used
// afterwards.
func (g *Generator) Close() {
	g.stop.Do(func() { close(g.done) })
}

// Uint64 returns the next 64 bits of the stream.
func (g *Generator) Uint64() uint64 {
	v, ok := <-g.ch
	if !ok {
		panic("rand: Generator used after Close")
	}
	return v
}

// Int63 provides the same interface as Go's math/rand, but with pre-generation.
func (g *Generator) Int63() int64 {
	return int64(g.Uint64() & 0x7fffffffffffffff)
}
