// Package daily derives a deterministic "word of the day" so every player
// gets the same target on the same UTC date.
package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using a BLAKE2b-256
// hash keyed by salt over YYYY-MM-DD, reduced modulo answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		return 0
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Picker is the subset of a word list needed to pick a daily word.
type Picker interface {
	Len() int
	At(i int) string
}

// Word returns the answer for the date of t.
func Word(list Picker, t time.Time, salt string) string {
	return list.At(WordIndex(t, salt, list.Len()))
}
