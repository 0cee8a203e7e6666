package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"promptforge/prompt"
)

type memoryKV struct {
	values map[string][]byte
	sets   int
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string][]byte{}}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.sets++
	m.values[key] = value
	return nil
}

func entry(id, idea string) prompt.HistoryEntry {
	return prompt.HistoryEntry{
		ID:        id,
		Idea:      idea,
		Result:    "result for " + idea,
		Persona:   "default",
		Mode:      "detailed",
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func newStore(t *testing.T) (*Store, *memoryKV) {
	t.Helper()
	kv := newMemoryKV()
	s, err := NewStore(context.Background(), kv, zap.NewNop())
	require.NoError(t, err)
	return s, kv
}

func TestAppendPrependsNewestFirst(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, entry("1", "first")))
	require.NoError(t, s.Append(ctx, entry("2", "second")))

	got := s.History()
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
}

func TestAppendDoesNotMutateExistingEntries(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	first := entry("1", "first")
	require.NoError(t, s.Append(ctx, first))
	before := s.History()

	require.NoError(t, s.Append(ctx, entry("2", "second")))
	after := s.History()

	assert.Equal(t, before[0], after[1])
}

func TestSaveToLibraryIsIdempotent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	e := entry("1", "idea")

	require.NoError(t, s.SaveToLibrary(ctx, e))
	require.NoError(t, s.SaveToLibrary(ctx, e))

	assert.Len(t, s.Library(), 1)
	assert.True(t, s.InLibrary("1"))
}

func TestRemoveCascadesIntoLibrary(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	e := entry("1", "idea")

	require.NoError(t, s.Append(ctx, e))
	require.NoError(t, s.SaveToLibrary(ctx, e))
	require.NoError(t, s.Remove(ctx, "1"))

	assert.Empty(t, s.History())
	assert.Empty(t, s.Library())
}

func TestRemoveLeavesLibraryUntouchedWhenAbsent(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, entry("1", "one")))
	require.NoError(t, s.SaveToLibrary(ctx, entry("2", "two")))

	setsBefore := kv.sets
	require.NoError(t, s.Remove(ctx, "1"))

	assert.Empty(t, s.History())
	assert.Len(t, s.Library(), 1)
	// Only the history collection was rewritten.
	assert.Equal(t, setsBefore+1, kv.sets)
}

func TestRemoveFromLibraryKeepsHistory(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	e := entry("1", "idea")

	require.NoError(t, s.Append(ctx, e))
	require.NoError(t, s.SaveToLibrary(ctx, e))
	require.NoError(t, s.RemoveFromLibrary(ctx, "1"))

	assert.Len(t, s.History(), 1)
	assert.Empty(t, s.Library())
}

func TestStateSurvivesReload(t *testing.T) {
	kv := newMemoryKV()
	ctx := context.Background()

	s1, err := NewStore(ctx, kv, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s1.Append(ctx, entry("1", "idea")))
	require.NoError(t, s1.SaveToLibrary(ctx, entry("1", "idea")))

	s2, err := NewStore(ctx, kv, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, s1.History(), s2.History())
	assert.Equal(t, s1.Library(), s2.Library())
}

func TestFileKVRoundTrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, historyKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, historyKey, []byte(`[{"id":"1"}]`)))
	raw, ok, err := kv.Get(ctx, historyKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(raw))
}
