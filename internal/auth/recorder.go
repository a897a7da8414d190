package auth

import "sync"

// Recorder keeps a bounded ring of recent login latency samples in
// milliseconds for the admin stats endpoint.
type Recorder struct {
	mu      sync.Mutex
	samples []int
	next    int
	full    bool
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 256
	}
	return &Recorder{samples: make([]int, capacity)}
}

func (r *Recorder) Observe(ms int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[r.next] = ms
	r.next++
	if r.next == len(r.samples) {
		r.next = 0
		r.full = true
	}
}

// Samples returns a copy of the recorded values, oldest first not
// guaranteed; callers only aggregate.
func (r *Recorder) Samples() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.next
	if r.full {
		n = len(r.samples)
	}
	out := make([]int, n)
	copy(out, r.samples[:n])
	return out
}
