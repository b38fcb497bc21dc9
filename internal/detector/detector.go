package detector

import "time"

// Kind enumerates the gesture event kinds delivered by the client.
type Kind string

const (
	KindKey         Kind = "key"
	KindClick       Kind = "click"
	KindDoubleClick Kind = "dblclick"
	KindPointerDown Kind = "pointerdown"
	KindPointerUp   Kind = "pointerup"
	KindScroll      Kind = "scroll"
	KindMotion      Kind = "motion"
	KindTouchEnd    Kind = "touchend"
)

// Event is a single gesture sample from the client. Fields are populated
// per kind: Key for key events, Target for click/pointer events, the scroll
// triple for scroll events, the acceleration triple for motion events.
// Timestamp is client epoch milliseconds.
type Event struct {
	Kind      Kind   `json:"kind" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
	Key       string `json:"key,omitempty"`
	Target    string `json:"target,omitempty"`

	ScrollTop  float64 `json:"scrollTop,omitempty"`
	DocHeight  float64 `json:"docHeight,omitempty"`
	ViewHeight float64 `json:"viewHeight,omitempty"`

	AccelX float64 `json:"accelX,omitempty"`
	AccelY float64 `json:"accelY,omitempty"`
	AccelZ float64 `json:"accelZ,omitempty"`
}

// Detector folds gesture events and fires its trigger callback once per
// trigger episode. Handle is not safe for concurrent use; the owning
// session serialises calls. Teardown cancels any pending timers and must be
// safe to call more than once.
type Detector interface {
	Name() string
	Handle(ev Event)
	Teardown()
}

// Scheduler arms cancellable one-shot timers for detectors that need wall
// time. The returned cancel func must be idempotent.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

// SystemScheduler is the production Scheduler, backed by time.AfterFunc.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}
