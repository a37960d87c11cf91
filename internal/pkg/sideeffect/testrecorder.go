package sideeffect

import "sync"

// TestRecorder keeps outcomes in memory for assertions in tests.
type TestRecorder struct {
	mu       sync.Mutex
	outcomes map[string][]Outcome
}

func NewTestRecorder() *TestRecorder {
	return &TestRecorder{
		outcomes: make(map[string][]Outcome),
	}
}

func (r *TestRecorder) Record(effect string, outcome Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes[effect] = append(r.outcomes[effect], outcome)
}

// Outcomes returns the recorded outcomes for one effect in record order.
func (r *TestRecorder) Outcomes(effect string) []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcomes := make([]Outcome, len(r.outcomes[effect]))
	copy(outcomes, r.outcomes[effect])
	return outcomes
}
