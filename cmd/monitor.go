package cmd

import (
	"expvar"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// monitor publishes sampler progress via expvar over HTTP
type monitor struct {
	info     *expvar.Map
	stopped  chan struct{}
	server   *http.Server
	listener net.Listener
	out      *log.Logger

	Seed          *expvar.Int
	TargetSamples *expvar.Int
	Samples       *expvar.Int
	RunTime       *expvar.Float
	LastTheta     *expvar.Float
	LastSigma2    *expvar.Float
}

const progressName = "normgibbs-progress"

// expvar names are process global and may only be published once, so later
// monitors reuse the map and overwrite its entries.
func progressMap() *expvar.Map {
	if v, ok := expvar.Get(progressName).(*expvar.Map); ok {
		return v
	}
	return expvar.NewMap(progressName)
}

// Start begins the monitor listening on addr
func (m *monitor) Start(addr string, out *log.Logger) error {
	if m.info != nil {
		return errors.Errorf("BUG: You may only start the process monitor once")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "Could not start monitor on %s", addr)
	}

	m.out = out
	m.listener = ln
	m.info = progressMap()
	m.stopped = make(chan struct{})

	// Help the user and redirect to the only thing currently available:
	// the handler from the expvar package
	mux := http.NewServeMux()
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/debug/vars", http.StatusTemporaryRedirect)
	})
	m.server = &http.Server{Handler: mux}

	m.Seed = new(expvar.Int)
	m.TargetSamples = new(expvar.Int)
	m.Samples = new(expvar.Int)
	m.RunTime = new(expvar.Float)
	m.LastTheta = new(expvar.Float)
	m.LastSigma2 = new(expvar.Float)

	m.info.Set("Seed", m.Seed)
	m.info.Set("Target-Samples", m.TargetSamples)
	m.info.Set("Samples", m.Samples)
	m.info.Set("Run-Time", m.RunTime)
	m.info.Set("Last-Theta", m.LastTheta)
	m.info.Set("Last-Sigma2", m.LastSigma2)

	// Actual server that will close the stopped channel on exit
	go func() {
		defer close(m.stopped)
		m.server.Serve(ln)
	}()

	m.out.Printf("HTTP now available at %v (see debug/vars/)\n", ln.Addr())
	return nil
}

// Addr is the address actually listened on
func (m *monitor) Addr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

// Record publishes draw s of the chain
func (m *monitor) Record(s int, theta float64, sigma2 float64, started time.Time) {
	m.Samples.Set(int64(s + 1))
	m.LastTheta.Set(theta)
	m.LastSigma2.Set(sigma2)
	m.RunTime.Set(time.Since(started).Seconds())
}

// Stop shuts down the HTTP server; it is a no-op if Start was never called
func (m *monitor) Stop() {
	if m.info == nil {
		return
	}

	m.server.Close()

	select {
	case <-m.stopped:
		m.out.Printf("HTTP Info Stopped\n")
	case <-time.After(2 * time.Second):
		m.out.Printf("HTTP would NOT stop: just continuing on\n")
	}
}
