package detector

const (
	doubleTapGapMS      = 300
	doubleTapCooldownMS = 2000
)

// DoubleTap fires when two touch-end events land within 300ms of each
// other, or immediately on a native double-click (the desktop browser has
// already done the pairing). Re-armable after the same 2s cooldown the
// shake detector uses.
type DoubleTap struct {
	onTrigger func()
	lastTap   int64
	lastFired int64
}

func NewDoubleTap(onTrigger func()) *DoubleTap {
	return &DoubleTap{onTrigger: onTrigger}
}

func (d *DoubleTap) Name() string { return "double_tap" }

func (d *DoubleTap) Handle(ev Event) {
	switch ev.Kind {
	case KindTouchEnd:
		if d.lastTap > 0 && ev.Timestamp-d.lastTap <= doubleTapGapMS {
			d.lastTap = 0
			d.fire(ev.Timestamp)
			return
		}
		d.lastTap = ev.Timestamp

	case KindDoubleClick:
		d.fire(ev.Timestamp)
	}
}

func (d *DoubleTap) fire(now int64) {
	if d.lastFired != 0 && now-d.lastFired < doubleTapCooldownMS {
		return
	}
	d.lastFired = now
	d.onTrigger()
}

func (d *DoubleTap) Teardown() {}
