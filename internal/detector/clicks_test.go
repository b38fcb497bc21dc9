package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func click(ts int64) Event {
	return Event{Kind: KindClick, Timestamp: ts}
}

func TestTripleClick_ThreeFastClicks(t *testing.T) {
	c := &counter{}
	d := NewTripleClick(c.inc)

	d.Handle(click(1000))
	d.Handle(click(1150))
	d.Handle(click(1300))

	assert.Equal(t, 1, c.n)
}

func TestTripleClick_WindowExpiryResets(t *testing.T) {
	c := &counter{}
	d := NewTripleClick(c.inc)

	// Two clicks inside the window, third at 600ms - the window has
	// already lapsed, so the third starts a fresh count.
	d.Handle(click(1000))
	d.Handle(click(1300))
	d.Handle(click(1600))

	assert.Equal(t, 0, c.n)
}

func TestTripleClick_ThirdClickExactlyOnDeadline(t *testing.T) {
	c := &counter{}
	d := NewTripleClick(c.inc)

	d.Handle(click(1000))
	d.Handle(click(1200))
	d.Handle(click(1500)) // 500ms after the first: still inside

	assert.Equal(t, 1, c.n)
}

func TestTripleClick_CanFireAgain(t *testing.T) {
	c := &counter{}
	d := NewTripleClick(c.inc)

	for _, ts := range []int64{1000, 1100, 1200} {
		d.Handle(click(ts))
	}
	for _, ts := range []int64{9000, 9100, 9200} {
		d.Handle(click(ts))
	}

	assert.Equal(t, 2, c.n)
}

func TestTripleClick_IgnoresOtherKinds(t *testing.T) {
	c := &counter{}
	d := NewTripleClick(c.inc)

	d.Handle(Event{Kind: KindKey, Key: "a", Timestamp: 1000})
	d.Handle(click(1010))
	d.Handle(Event{Kind: KindScroll, Timestamp: 1020})
	d.Handle(click(1030))
	d.Handle(click(1050))

	assert.Equal(t, 1, c.n, "non-click events neither count nor reset")
}
