package detector

import "strings"

// konamiSequence is the classic code, matched against lowercased key names.
var konamiSequence = []string{
	"arrowup", "arrowup",
	"arrowdown", "arrowdown",
	"arrowleft", "arrowright",
	"arrowleft", "arrowright",
	"b", "a",
}

// Konami matches the Konami code against the key event stream. The match
// must be contiguous and exact; a wrong key drops all progress (though a
// wrong key that happens to start the sequence counts as fresh progress).
type Konami struct {
	onTrigger func()
	idx       int
}

func NewKonami(onTrigger func()) *Konami {
	return &Konami{onTrigger: onTrigger}
}

func (k *Konami) Name() string { return "konami" }

func (k *Konami) Handle(ev Event) {
	if ev.Kind != KindKey {
		return
	}
	key := strings.ToLower(ev.Key)

	if key == konamiSequence[k.idx] {
		k.idx++
		if k.idx == len(konamiSequence) {
			k.idx = 0
			k.onTrigger()
		}
		return
	}

	// No partial credit on mismatch.
	k.idx = 0
	if key == konamiSequence[0] {
		k.idx = 1
	}
}

func (k *Konami) Teardown() {}
