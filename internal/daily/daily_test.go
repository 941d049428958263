package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedList []string

func (l fixedList) Len() int        { return len(l) }
func (l fixedList) At(i int) string { return l[i] }

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 3, 1, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-02-28", DateKey(ts))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)

	i := WordIndex(day, "salt", 100)
	require.GreaterOrEqual(t, i, 0)
	require.Less(t, i, 100)
	assert.Equal(t, i, WordIndex(later, "salt", 100), "same UTC day, same word")
	assert.Equal(t, 0, WordIndex(day, "salt", 0))
	assert.Equal(t, 0, WordIndex(day, "salt", 1))

	long := string(make([]byte, 100))
	j := WordIndex(day, long, 100)
	assert.Equal(t, j, WordIndex(day, long, 100))
}

func TestWordIndex_VariesAcrossDays(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for d := 0; d < 30; d++ {
		seen[WordIndex(start.AddDate(0, 0, d), "salt", 1000)] = true
	}
	assert.Greater(t, len(seen), 20)
}

func TestWord(t *testing.T) {
	list := fixedList{"SEVER", "SAVER", "EVENT"}
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	w := Word(list, day, "salt")
	assert.Contains(t, list, w)
	assert.Equal(t, w, Word(list, day.Add(time.Hour), "salt"))
}
