package detector

// Set owns the full detector complement for one visitor session and fans
// each incoming event out to all of them. Install order is the catalog
// order; it only affects which detector sees an event first, never the
// final unlock state.
type Set struct {
	detectors []Detector
}

// NewSet builds every detector, binding each to the achievement it unlocks
// via the supplied unlock func. phrase overrides the typed secret phrase;
// empty keeps the default.
func NewSet(sched Scheduler, phrase string, unlock func(achievementID string)) *Set {
	trigger := func(id string) func() {
		return func() { unlock(id) }
	}

	return &Set{detectors: []Detector{
		NewKonami(trigger("konami")),
		NewTripleClick(trigger("rapid_clicker")),
		NewSecretPhrase(phrase, trigger("hacker")),
		NewScrollDepth(trigger("deep_scroller")),
		NewElapsed(sched, trigger("time_traveler")),
		NewShake(trigger("shake_master")),
		NewDoubleTap(trigger("double_tapper")),
	}}
}

// Handle feeds one event to every detector. Not safe for concurrent use;
// the owning session serialises calls.
func (s *Set) Handle(ev Event) {
	for _, d := range s.detectors {
		d.Handle(ev)
	}
}

// Teardown dismantles every detector, cancelling pending timers.
func (s *Set) Teardown() {
	for _, d := range s.detectors {
		d.Teardown()
	}
}

// Names lists the installed detectors, mainly for diagnostics.
func (s *Set) Names() []string {
	names := make([]string, len(s.detectors))
	for i, d := range s.detectors {
		names[i] = d.Name()
	}
	return names
}
