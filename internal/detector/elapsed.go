package detector

import "time"

// elapsedGoal is how long a visitor has to stick around.
const elapsedGoal = 180 * time.Second

// Elapsed fires once after a fixed dwell time. The timer is armed at
// construction and owned by the detector; Teardown cancels it so a
// dismantled session can never fire into the void.
type Elapsed struct {
	cancel func()
}

func NewElapsed(sched Scheduler, onTrigger func()) *Elapsed {
	return &Elapsed{cancel: sched.AfterFunc(elapsedGoal, onTrigger)}
}

func (e *Elapsed) Name() string { return "elapsed_time" }

// Handle is a no-op: this detector is driven by wall time, not events.
func (e *Elapsed) Handle(Event) {}

func (e *Elapsed) Teardown() {
	e.cancel()
}
