package words

import (
	"context"
	"sync"
)

// Library loads lists on demand, one per word length, from the same Sources.
// Successful loads are cached; failures are retried on the next call.
type Library struct {
	src Sources

	mu    sync.Mutex
	lists map[int]*List
}

// NewLibrary returns a Library reading from src.
func NewLibrary(src Sources) *Library {
	return &Library{src: src, lists: make(map[int]*List)}
}

// Get returns the list for words of the given length.
func (lib *Library) Get(ctx context.Context, length int) (*List, error) {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if l, ok := lib.lists[length]; ok {
		return l, nil
	}
	l, err := Load(ctx, length, lib.src)
	if err != nil {
		return nil, err
	}
	lib.lists[length] = l
	return l, nil
}

// Contains reports whether word is allowed in the list for its own length.
// It lets one Library act as the lexicon for sessions whose word length
// changes between games.
func (lib *Library) Contains(word string) bool {
	l, err := lib.Get(context.Background(), len(word))
	if err != nil {
		return false
	}
	return l.Contains(word)
}
