package metrics

import (
	"time"

	"github.com/rs/zerolog"
)

// Step holds the timing of one completed pipeline step. Rows is -1 when the
// step has no meaningful row count.
type Step struct {
	Name     string
	Duration time.Duration
	Rows     int
}

// Recorder accumulates per-step timings and row counts over one run.
// It is not safe for concurrent use; the pipeline records steps serially.
type Recorder struct {
	begun time.Time
	steps []Step
}

// NewRecorder starts a recorder; total runtime is measured from this call.
func NewRecorder() *Recorder {
	return &Recorder{begun: time.Now()}
}

// StartStep begins timing a named step.
func (r *Recorder) StartStep(name string) *StepTimer {
	return &StepTimer{recorder: r, name: name, begun: time.Now()}
}

// Steps returns the recorded steps in completion order.
func (r *Recorder) Steps() []Step {
	return r.steps
}

// Total returns the elapsed time since the recorder started.
func (r *Recorder) Total() time.Duration {
	return time.Since(r.begun)
}

// Summarize logs one line per step plus a run total.
func (r *Recorder) Summarize(lgr zerolog.Logger) {
	total := r.Total()
	for _, s := range r.steps {
		ev := lgr.Info().Str("step", s.Name).Dur("took", s.Duration)
		if s.Rows >= 0 {
			ev = ev.Int("rows", s.Rows)
		}
		if total > 0 {
			ev = ev.Float64("pct", float64(s.Duration)/float64(total)*100)
		}
		ev.Msg("Step completed")
	}
	lgr.Info().Dur("total", total).Int("steps", len(r.steps)).Msg("Pipeline timing summary")
}

// StepTimer times a single step; Stop records it on the parent recorder.
type StepTimer struct {
	recorder *Recorder
	name     string
	begun    time.Time
}

// Stop records the step with its row count. Pass a negative count for steps
// without one.
func (t *StepTimer) Stop(rows int) {
	t.recorder.steps = append(t.recorder.steps, Step{
		Name:     t.name,
		Duration: time.Since(t.begun),
		Rows:     rows,
	})
}
