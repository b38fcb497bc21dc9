package achievement

import (
	"sort"
	"strconv"
	"strings"
)

// Signature computes the tamper-evidence checksum over a set of unlocked IDs.
//
// The IDs are sorted, pipe-joined, and suffixed with the secret key; the
// result is run through a rolling 31-multiplier hash over 32-bit signed
// integers (overflow wraps), then the absolute value is rendered base-36.
//
// This deters hand-editing of the stored record. It is NOT a MAC: the key is
// embedded in the application and recoverable by anyone who cares to look.
func Signature(ids []string, key string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	payload := strings.Join(sorted, "|") + key

	var h int32
	for _, r := range payload {
		h = h*31 + int32(r)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}

// VerifySignature reports whether sig matches the checksum for ids.
func VerifySignature(ids []string, sig, key string) bool {
	return Signature(ids, key) == sig
}
