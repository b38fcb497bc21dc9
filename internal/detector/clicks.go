package detector

const (
	tripleClickThreshold = 3
	tripleClickWindowMS  = 500
)

// TripleClick fires when three clicks land inside a 500ms window. The
// window opens on the first click; a click past the deadline silently
// starts a fresh window rather than extending the old one.
type TripleClick struct {
	onTrigger   func()
	count       int
	windowStart int64
}

func NewTripleClick(onTrigger func()) *TripleClick {
	return &TripleClick{onTrigger: onTrigger}
}

func (t *TripleClick) Name() string { return "triple_click" }

func (t *TripleClick) Handle(ev Event) {
	if ev.Kind != KindClick {
		return
	}

	if t.count == 0 || ev.Timestamp-t.windowStart > tripleClickWindowMS {
		t.count = 1
		t.windowStart = ev.Timestamp
		return
	}

	t.count++
	if t.count >= tripleClickThreshold {
		t.count = 0
		t.onTrigger()
	}
}

func (t *TripleClick) Teardown() {}
