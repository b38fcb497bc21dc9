package detector

import (
	"math"
	"strings"
)

const (
	shakeSampleIntervalMS = 100  // accelerometer samples closer together are dropped
	shakeSpeedThreshold   = 30.0 // smoothed acceleration change per second
	shakeCooldownMS       = 2000

	// Keyboard proxy for clients without motion sensors.
	shakeProxyKey      = "m"
	shakeProxyCount    = 5
	shakeProxyWindowMS = 1000
)

// Shake detects vigorous device motion from 3-axis accelerometer samples.
// The rate of change between samples (at least 100ms apart) is smoothed
// and compared against a threshold. Unlike the single-shot detectors it
// re-arms after a 2s cooldown; the engine handles unlock dedup.
//
// Clients without a motion sensor get a keyboard proxy: five presses of
// the designated key inside one second.
type Shake struct {
	onTrigger func()

	lastAt     int64
	lastX      float64
	lastY      float64
	lastZ      float64
	haveSample bool
	speed      float64

	lastFired int64
	presses   []int64
}

func NewShake(onTrigger func()) *Shake {
	return &Shake{onTrigger: onTrigger}
}

func (s *Shake) Name() string { return "shake" }

func (s *Shake) Handle(ev Event) {
	switch ev.Kind {
	case KindMotion:
		s.handleMotion(ev)
	case KindKey:
		s.handleProxyKey(ev)
	}
}

func (s *Shake) handleMotion(ev Event) {
	if s.haveSample && ev.Timestamp-s.lastAt < shakeSampleIntervalMS {
		return
	}

	if s.haveSample {
		dt := ev.Timestamp - s.lastAt
		delta := math.Abs(ev.AccelX-s.lastX) +
			math.Abs(ev.AccelY-s.lastY) +
			math.Abs(ev.AccelZ-s.lastZ)
		instant := delta / float64(dt) * 1000

		// Light smoothing keeps a single noisy sample from firing.
		s.speed = (s.speed + instant) / 2

		if s.speed > shakeSpeedThreshold && s.cooledDown(ev.Timestamp) {
			s.lastFired = ev.Timestamp
			s.onTrigger()
		}
	}

	s.lastAt = ev.Timestamp
	s.lastX, s.lastY, s.lastZ = ev.AccelX, ev.AccelY, ev.AccelZ
	s.haveSample = true
}

func (s *Shake) handleProxyKey(ev Event) {
	if !strings.EqualFold(ev.Key, shakeProxyKey) {
		return
	}

	s.presses = append(s.presses, ev.Timestamp)
	cutoff := ev.Timestamp - shakeProxyWindowMS
	kept := s.presses[:0]
	for _, at := range s.presses {
		if at >= cutoff {
			kept = append(kept, at)
		}
	}
	s.presses = kept

	if len(s.presses) >= shakeProxyCount && s.cooledDown(ev.Timestamp) {
		s.presses = s.presses[:0]
		s.lastFired = ev.Timestamp
		s.onTrigger()
	}
}

func (s *Shake) cooledDown(now int64) bool {
	return s.lastFired == 0 || now-s.lastFired >= shakeCooldownMS
}

func (s *Shake) Teardown() {}
