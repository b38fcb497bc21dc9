package achievement

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Storage is the visitor-local key/value store the unlock record lives in.
// The web server backs it with SQLite keyed by visitor ID; tests use an
// in-memory map. A missing key is reported via ok=false, not an error.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Storage keys. These mirror the browser-era localStorage layout and are
// part of the external interface; do not rename.
const (
	keyUnlocked   = "unlockedAchievements"
	keySignature  = "achievementSignature"
	keyTimestamps = "achievementTimestamps"
	keyCompleted  = "allAchievementsCompleted"
)

// Plausibility limits applied to loaded timestamps.
const (
	maxFutureSkew      = 60 * time.Second
	maxRecordAge       = 365 * 24 * time.Hour
	minFullCatalogSpan = 10 * time.Second
)

// Persister serialises unlock records to a Storage with a tamper-evidence
// signature, and validates records on the way back in. It owns nothing but
// the wire format: the engine owns the record itself.
type Persister struct {
	storage Storage
	secret  string
	catalog int // catalog size, for the implausible-completion check
	now     func() time.Time
}

// NewPersister creates a persister over storage. catalogSize is the number
// of achievements in the full catalog; now is the clock used for timestamp
// plausibility (nil means time.Now).
func NewPersister(storage Storage, secret string, catalogSize int, now func() time.Time) *Persister {
	if now == nil {
		now = time.Now
	}
	return &Persister{storage: storage, secret: secret, catalog: catalogSize, now: now}
}

// Save writes the record and its freshly computed signature.
func (p *Persister) Save(rec Record) error {
	idsJSON, err := json.Marshal(rec.UnlockedIDs)
	if err != nil {
		return fmt.Errorf("marshal unlocked ids: %w", err)
	}
	tsJSON, err := json.Marshal(rec.Timestamps)
	if err != nil {
		return fmt.Errorf("marshal timestamps: %w", err)
	}

	if err := p.storage.Set(keyUnlocked, string(idsJSON)); err != nil {
		return fmt.Errorf("store unlocked ids: %w", err)
	}
	if err := p.storage.Set(keySignature, Signature(rec.UnlockedIDs, p.secret)); err != nil {
		return fmt.Errorf("store signature: %w", err)
	}
	if err := p.storage.Set(keyTimestamps, string(tsJSON)); err != nil {
		return fmt.Errorf("store timestamps: %w", err)
	}

	if rec.Completed {
		if err := p.storage.Set(keyCompleted, "true"); err != nil {
			return fmt.Errorf("store completion flag: %w", err)
		}
	}
	return nil
}

// Load reads the stored record back, verifying the signature and timestamp
// plausibility. Validation failures are treated as tampering: the storage is
// cleared and an empty record returned. Load never fails the caller - the
// worst case is a fresh start.
func (p *Persister) Load() Record {
	idsRaw, idsOK, err := p.storage.Get(keyUnlocked)
	if err != nil {
		return p.reset("storage read failed", err)
	}
	sig, sigOK, err := p.storage.Get(keySignature)
	if err != nil {
		return p.reset("storage read failed", err)
	}
	tsRaw, tsOK, err := p.storage.Get(keyTimestamps)
	if err != nil {
		return p.reset("storage read failed", err)
	}

	// Nothing stored yet: fresh start, not an error.
	if !idsOK && !sigOK && !tsOK {
		return Record{}
	}
	// Partial state means something deleted or half-written it. Start clean.
	if !idsOK || !sigOK || !tsOK {
		return p.reset("partial record", nil)
	}

	var rec Record
	if err := json.Unmarshal([]byte(idsRaw), &rec.UnlockedIDs); err != nil {
		return p.reset("corrupt unlocked ids", err)
	}
	if err := json.Unmarshal([]byte(tsRaw), &rec.Timestamps); err != nil {
		return p.reset("corrupt timestamps", err)
	}

	if !VerifySignature(rec.UnlockedIDs, sig, p.secret) {
		return p.reset("signature mismatch", nil)
	}
	if !rec.consistent() {
		return p.reset("timestamp count mismatch", nil)
	}
	if reason := p.implausible(rec.Timestamps); reason != "" {
		return p.reset(reason, nil)
	}

	if flag, ok, err := p.storage.Get(keyCompleted); err == nil && ok && flag == "true" {
		// The flag is only honoured when the record actually is complete.
		if len(rec.UnlockedIDs) >= p.catalog {
			rec.Completed = true
		} else {
			return p.reset("completion flag without full record", nil)
		}
	}

	return rec
}

// Inspection is the raw stored record plus its verification outcome, read
// without Load's reset-on-failure side effect. Maintenance tooling uses it
// to look at a record without destroying it.
type Inspection struct {
	Present     bool
	ParseOK     bool
	SignatureOK bool
	UnlockedIDs []string
	Timestamps  []StampedUnlock
	Completed   bool
}

// Inspect reads the stored record as-is. Unlike Load it never mutates
// storage; a tampered record comes back with SignatureOK=false.
func (p *Persister) Inspect() (Inspection, error) {
	idsRaw, idsOK, err := p.storage.Get(keyUnlocked)
	if err != nil {
		return Inspection{}, fmt.Errorf("read unlocked ids: %w", err)
	}
	sig, _, err := p.storage.Get(keySignature)
	if err != nil {
		return Inspection{}, fmt.Errorf("read signature: %w", err)
	}
	tsRaw, tsOK, err := p.storage.Get(keyTimestamps)
	if err != nil {
		return Inspection{}, fmt.Errorf("read timestamps: %w", err)
	}
	flag, _, err := p.storage.Get(keyCompleted)
	if err != nil {
		return Inspection{}, fmt.Errorf("read completion flag: %w", err)
	}

	if !idsOK {
		return Inspection{}, nil
	}

	ins := Inspection{Present: true, Completed: flag == "true"}
	if err := json.Unmarshal([]byte(idsRaw), &ins.UnlockedIDs); err != nil {
		return ins, nil
	}
	if tsOK {
		if err := json.Unmarshal([]byte(tsRaw), &ins.Timestamps); err != nil {
			return ins, nil
		}
	}
	ins.ParseOK = true
	ins.SignatureOK = VerifySignature(ins.UnlockedIDs, sig, p.secret)
	return ins, nil
}

// Clear removes the stored record entirely.
func (p *Persister) Clear() error {
	for _, key := range []string{keyUnlocked, keySignature, keyTimestamps, keyCompleted} {
		if err := p.storage.Delete(key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

// implausible returns a non-empty reason when the timestamps cannot belong
// to a genuine play session.
func (p *Persister) implausible(stamps []StampedUnlock) string {
	now := p.now()

	var minAt, maxAt int64
	for i, s := range stamps {
		at := time.UnixMilli(s.UnlockedAt)
		if at.After(now.Add(maxFutureSkew)) {
			return "timestamp in the future"
		}
		if at.Before(now.Add(-maxRecordAge)) {
			return "timestamp too old"
		}
		if i == 0 || s.UnlockedAt < minAt {
			minAt = s.UnlockedAt
		}
		if i == 0 || s.UnlockedAt > maxAt {
			maxAt = s.UnlockedAt
		}
	}

	// A full catalog unlocked inside a few seconds is a crafted record.
	if len(stamps) >= p.catalog && p.catalog > 0 {
		if time.Duration(maxAt-minAt)*time.Millisecond < minFullCatalogSpan {
			return "full catalog unlocked implausibly fast"
		}
	}
	return ""
}

// reset clears the stored record and returns an empty one. Logged as a
// warning; tampering is never surfaced to the visitor as an error.
func (p *Persister) reset(reason string, err error) Record {
	if err != nil {
		slog.Warn("discarding achievement record", "reason", reason, "error", err)
	} else {
		slog.Warn("discarding achievement record", "reason", reason)
	}
	for _, key := range []string{keyUnlocked, keySignature, keyTimestamps, keyCompleted} {
		if err := p.storage.Delete(key); err != nil {
			slog.Warn("clearing achievement storage failed", "key", key, "error", err)
		}
	}
	return Record{}
}
