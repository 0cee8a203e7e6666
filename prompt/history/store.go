// Package history keeps the durable, newest-first history and library
// collections. The store is the sole mutator of both; every mutation replaces
// the whole collection and persists it, never patching in place.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"promptforge/prompt"
)

const (
	historyKey = "promptforge:history"
	libraryKey = "promptforge:library"
)

// KV is the durable key-value store the collections serialize into.
type KV interface {
	// Get returns the stored value, or ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores the value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// Store owns the history and library collections.
type Store struct {
	kv  KV
	log *zap.Logger

	mu      sync.Mutex
	history []prompt.HistoryEntry
	library []prompt.HistoryEntry
}

// NewStore loads both collections from the KV store.
func NewStore(ctx context.Context, kv KV, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log}

	var err error
	if s.history, err = s.load(ctx, historyKey); err != nil {
		return nil, err
	}
	if s.library, err = s.load(ctx, libraryKey); err != nil {
		return nil, err
	}
	log.Info("history loaded",
		zap.Int("history", len(s.history)),
		zap.Int("library", len(s.library)))
	return s, nil
}

func (s *Store) load(ctx context.Context, key string) ([]prompt.HistoryEntry, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	var entries []prompt.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return entries, nil
}

func (s *Store) persist(ctx context.Context, key string, entries []prompt.HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// Append prepends a new entry to history (newest-first) and persists.
func (s *Store) Append(ctx context.Context, entry prompt.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]prompt.HistoryEntry{entry}, s.history...)
	if err := s.persist(ctx, historyKey, next); err != nil {
		return err
	}
	s.history = next
	return nil
}

// Remove deletes a history entry by id and cascades into the library.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nextHistory := filterOut(s.history, id)
	if err := s.persist(ctx, historyKey, nextHistory); err != nil {
		return err
	}
	s.history = nextHistory

	nextLibrary := filterOut(s.library, id)
	if len(nextLibrary) != len(s.library) {
		if err := s.persist(ctx, libraryKey, nextLibrary); err != nil {
			return err
		}
		s.library = nextLibrary
	}
	return nil
}

// SaveToLibrary stores a full copy of the entry keyed by its id. Saving an id
// already present is a no-op.
func (s *Store) SaveToLibrary(ctx context.Context, entry prompt.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.library {
		if e.ID == entry.ID {
			return nil
		}
	}
	next := append([]prompt.HistoryEntry{entry}, s.library...)
	if err := s.persist(ctx, libraryKey, next); err != nil {
		return err
	}
	s.library = next
	return nil
}

// RemoveFromLibrary deletes a library entry by id.
func (s *Store) RemoveFromLibrary(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := filterOut(s.library, id)
	if err := s.persist(ctx, libraryKey, next); err != nil {
		return err
	}
	s.library = next
	return nil
}

// History returns a read-only copy of the history collection, newest first.
func (s *Store) History() []prompt.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]prompt.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Library returns a read-only copy of the library collection, newest first.
func (s *Store) Library() []prompt.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]prompt.HistoryEntry, len(s.library))
	copy(out, s.library)
	return out
}

// InLibrary reports whether an id is saved in the library.
func (s *Store) InLibrary(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.library {
		if e.ID == id {
			return true
		}
	}
	return false
}

func filterOut(entries []prompt.HistoryEntry, id string) []prompt.HistoryEntry {
	out := make([]prompt.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
