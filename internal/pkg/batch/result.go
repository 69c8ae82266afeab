// Package batch carries the outcome of a generation run in which every row
// is created independently and failures are reported rather than fatal.
package batch

import "sync"

type Failure struct {
	EntityID  string `json:"entity_id"`
	SubjectID string `json:"subject_id,omitempty"`
	Reason    string `json:"reason"`
}

type Result struct {
	Month    string    `json:"month"`
	Created  int       `json:"created"`
	Skipped  int       `json:"skipped"`
	Failures []Failure `json:"failures"`
}

// Recorder accumulates row outcomes. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	result Result
}

func NewRecorder(month string) *Recorder {
	return &Recorder{result: Result{Month: month, Failures: []Failure{}}}
}

func (r *Recorder) Created() {
	r.mu.Lock()
	r.result.Created++
	r.mu.Unlock()
}

func (r *Recorder) Skipped() {
	r.mu.Lock()
	r.result.Skipped++
	r.mu.Unlock()
}

func (r *Recorder) Failed(f Failure) {
	r.mu.Lock()
	r.result.Failures = append(r.result.Failures, f)
	r.mu.Unlock()
}

func (r *Recorder) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.result
	out.Failures = append([]Failure{}, r.result.Failures...)
	return out
}
