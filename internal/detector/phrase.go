package detector

import "strings"

// Discovery targets the client reports for the non-typed paths.
const (
	TargetLogo     = "logo"
	TargetPortrait = "portrait"
)

// navSequence is the nav-link order that reveals the secret.
var navSequence = []string{"nav:home", "nav:about", "nav:projects", "nav:contact"}

const (
	logoClickGoal    = 5
	longPressMinMS   = 2000
	defaultSecretCue = "hireme"
)

// SecretPhrase recognises four independent discovery paths that all fire
// the same trigger:
//
//   - typing the secret phrase (ring buffer over the last N keys,
//     case-insensitive; exhausted after its first match)
//   - five consecutive clicks on the logo
//   - a pointer press of at least two seconds on the portrait
//   - clicking the nav links in the fixed order
//
// The paths share nothing but the callback; the engine's idempotence
// collapses multiple discoveries into one unlock.
type SecretPhrase struct {
	onTrigger func()
	phrase    []rune

	buf        []rune
	typedDone  bool
	logoStreak int
	navIdx     int
	pressedAt  int64 // portrait pointer-down timestamp, 0 when not pressed
}

// NewSecretPhrase creates the detector. An empty phrase selects the
// default cue.
func NewSecretPhrase(phrase string, onTrigger func()) *SecretPhrase {
	if phrase == "" {
		phrase = defaultSecretCue
	}
	return &SecretPhrase{
		onTrigger: onTrigger,
		phrase:    []rune(strings.ToLower(phrase)),
	}
}

func (s *SecretPhrase) Name() string { return "secret_phrase" }

func (s *SecretPhrase) Handle(ev Event) {
	switch ev.Kind {
	case KindKey:
		s.handleKey(ev)
	case KindClick:
		s.handleClick(ev)
	case KindPointerDown:
		if ev.Target == TargetPortrait {
			s.pressedAt = ev.Timestamp
		}
	case KindPointerUp:
		if ev.Target == TargetPortrait && s.pressedAt > 0 {
			if ev.Timestamp-s.pressedAt >= longPressMinMS {
				s.onTrigger()
			}
			s.pressedAt = 0
		}
	}
}

func (s *SecretPhrase) handleKey(ev Event) {
	if s.typedDone {
		return
	}
	key := strings.ToLower(ev.Key)
	if len([]rune(key)) != 1 {
		// Modifier and navigation keys don't enter the typed buffer.
		return
	}

	s.buf = append(s.buf, []rune(key)[0])
	if len(s.buf) > len(s.phrase) {
		s.buf = s.buf[len(s.buf)-len(s.phrase):]
	}

	if string(s.buf) == string(s.phrase) {
		s.typedDone = true
		s.onTrigger()
	}
}

func (s *SecretPhrase) handleClick(ev Event) {
	// Logo streak: five in a row, broken by any other click.
	if ev.Target == TargetLogo {
		s.logoStreak++
		if s.logoStreak >= logoClickGoal {
			s.logoStreak = 0
			s.onTrigger()
		}
	} else {
		s.logoStreak = 0
	}

	// Nav sequence: only nav targets participate.
	if !strings.HasPrefix(ev.Target, "nav:") {
		return
	}
	if ev.Target == navSequence[s.navIdx] {
		s.navIdx++
		if s.navIdx == len(navSequence) {
			s.navIdx = 0
			s.onTrigger()
		}
		return
	}
	s.navIdx = 0
	if ev.Target == navSequence[0] {
		s.navIdx = 1
	}
}

func (s *SecretPhrase) Teardown() {}
