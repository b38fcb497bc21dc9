package detector

import "math"

const (
	scrollDistanceGoal = 20000 // cumulative pixels scrolled either direction
	bottomProximityPX  = 100
)

// ScrollDepth accumulates absolute scroll movement and fires once, either
// when the visitor has scrolled far enough in total or when the viewport
// reaches the bottom of the document, whichever comes first. Single-shot:
// after firing it ignores the rest of the stream.
type ScrollDepth struct {
	onTrigger func()
	last      float64
	haveLast  bool
	total     float64
	fired     bool
}

func NewScrollDepth(onTrigger func()) *ScrollDepth {
	return &ScrollDepth{onTrigger: onTrigger}
}

func (s *ScrollDepth) Name() string { return "scroll_depth" }

func (s *ScrollDepth) Handle(ev Event) {
	if ev.Kind != KindScroll || s.fired {
		return
	}

	if s.haveLast {
		s.total += math.Abs(ev.ScrollTop - s.last)
	}
	s.last = ev.ScrollTop
	s.haveLast = true

	atBottom := ev.DocHeight > 0 &&
		ev.ScrollTop+ev.ViewHeight >= ev.DocHeight-bottomProximityPX

	if s.total >= scrollDistanceGoal || atBottom {
		s.fired = true
		s.onTrigger()
	}
}

func (s *ScrollDepth) Teardown() {}
