package sideeffect

// Outcome is the observable result of a post-transition side effect, such as
// publishing an event or calling a peer service.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Recorder collects side-effect outcomes so operators can see which parts of
// the choreography degrade without failing the triggering request.
type Recorder interface {
	Record(effect string, outcome Outcome)
}

// NopRecorder discards every outcome.
type NopRecorder struct{}

func (NopRecorder) Record(string, Outcome) {}
