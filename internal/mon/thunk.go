package mon

import "time"

// Thunk accumulates latency samples for one named operation site. The
// zero value is ready to use.
type Thunk struct {
	hist Histogram
}

// Timer is an in-flight measurement returned by Thunk.Start. It must be
// stopped exactly once.
type Timer struct {
	thunk *Thunk
	start time.Time
}

// Start marks the beginning of a call and returns a Timer to stop it.
func (t *Thunk) Start() Timer {
	t.hist.start()
	return Timer{thunk: t, start: time.Now()}
}

// Stop records the elapsed time since Start into the thunk's histogram.
func (tm Timer) Stop() {
	tm.thunk.hist.done(int64(time.Since(tm.start)))
}

// Histogram returns the latency distribution collected so far.
func (t *Thunk) Histogram() *Histogram { return &t.hist }
