package session

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"promptforge/prompt"
	"promptforge/prompt/history"
	"promptforge/pubsub"
)

type memoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// fakeStreamer replays fixed fragments, optionally failing midway. release,
// when set, gates the first fragment so tests can hold a stream open.
type fakeStreamer struct {
	fragments []string
	failAfter int // fragments delivered before the error; -1 disables
	release   chan struct{}

	mu       sync.Mutex
	requests []prompt.GenerationRequest
}

func (f *fakeStreamer) Stream(_ context.Context, req prompt.GenerationRequest) iter.Seq2[string, error] {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	return func(yield func(string, error) bool) {
		if f.release != nil {
			<-f.release
		}
		for i, frag := range f.fragments {
			if f.failAfter >= 0 && i == f.failAfter {
				yield("", errors.New("generation failed"))
				return
			}
			if !yield(frag, nil) {
				return
			}
		}
	}
}

func (f *fakeStreamer) lastRequest() prompt.GenerationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newRuntime(t *testing.T, svc Streamer) *Runtime {
	t.Helper()
	store, err := history.NewStore(context.Background(), &memoryKV{values: map[string][]byte{}}, zap.NewNop())
	require.NoError(t, err)
	r := NewRuntime(svc, store, zap.NewNop())
	t.Cleanup(r.Shutdown)
	return r
}

func TestGenerateFoldsStreamAndCommits(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"Hello", " ", "world"}, failAfter: -1}
	r := newRuntime(t, svc)

	entry, err := r.Generate(context.Background(), "an idea", "default", "concise", nil)
	require.NoError(t, err)

	assert.Equal(t, "Hello world", entry.Result)
	assert.Equal(t, "an idea", entry.Idea)
	assert.NotEmpty(t, entry.ID)

	got := r.Store().History()
	require.Len(t, got, 1)
	assert.Equal(t, entry.ID, got[0].ID)
}

func TestGenerateRepublishesCumulativeText(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"a", "b", "c"}, failAfter: -1}
	r := newRuntime(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := r.Broker().Subscribe(ctx)

	_, err := r.Generate(context.Background(), "idea", "default", "detailed", nil)
	require.NoError(t, err)

	var updates []string
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type == pubsub.UpdatedEvent {
				updates = append(updates, ev.Payload.Text)
				continue
			}
			if ev.Type == pubsub.FinishedEvent {
				assert.Equal(t, []string{"a", "ab", "abc"}, updates)
				assert.Equal(t, "abc", ev.Payload.Text)
				return
			}
		case <-deadline:
			t.Fatal("never saw finished event")
		}
	}
}

func TestEmptyIdeaRejectedBeforeAnyWork(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"x"}, failAfter: -1}
	r := newRuntime(t, svc)

	_, err := r.Generate(context.Background(), "   \n\t ", "default", "detailed", nil)
	assert.ErrorIs(t, err, ErrEmptyIdea)
	assert.Empty(t, svc.requests)
	assert.Empty(t, r.Store().History())
}

func TestStreamFailureCommitsNothing(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"partial", " text"}, failAfter: 1}
	r := newRuntime(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := r.Broker().Subscribe(ctx)

	_, err := r.Generate(context.Background(), "idea", "default", "detailed", nil)
	require.Error(t, err)
	assert.Empty(t, r.Store().History())

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type == pubsub.FailedEvent {
				assert.Error(t, ev.Payload.Err)
				return
			}
		case <-deadline:
			t.Fatal("never saw failed event")
		}
	}
}

func TestRefineIdeaTemplate(t *testing.T) {
	idea := RefineIdea("previous result", "make it shorter")
	assert.Contains(t, idea, "Here is the prompt to refine:")
	assert.Contains(t, idea, "previous result")
	assert.Contains(t, idea, "Apply this instruction:")
	assert.Contains(t, idea, `"make it shorter"`)
}

func TestRefineIdeaKeepsInstructionVerbatim(t *testing.T) {
	instruction := `make the tone "friendly" and add a C:\path example`
	idea := RefineIdea("previous", instruction)

	assert.Contains(t, idea, instruction)
	assert.NotContains(t, idea, `\"friendly\"`)
	assert.NotContains(t, idea, `C:\\path`)
}

func TestRefineResubmitsTemplatedIdea(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"refined"}, failAfter: -1}
	r := newRuntime(t, svc)

	entry, err := r.Refine(context.Background(), "old prompt", "tighten it", "default", "concise", nil)
	require.NoError(t, err)

	assert.Contains(t, entry.Idea, "old prompt")
	assert.Contains(t, entry.Idea, "tighten it")
	assert.Contains(t, svc.lastRequest().IdeaText, "old prompt")
}

func TestRefineRejectsBlankInstruction(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"x"}, failAfter: -1}
	r := newRuntime(t, svc)

	_, err := r.Refine(context.Background(), "previous", "  ", "default", "concise", nil)
	assert.ErrorIs(t, err, ErrEmptyIdea)
}

func TestTrackBusyRejectsOverlap(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"x"}, failAfter: -1, release: make(chan struct{})}
	r := newRuntime(t, svc)

	done := make(chan error, 1)
	go func() {
		_, err := r.Generate(context.Background(), "idea", "default", "detailed", nil)
		done <- err
	}()

	// Wait until the first call holds the track.
	require.Eventually(t, func() bool { return r.Busy(TrackGenerate) }, time.Second, 5*time.Millisecond)

	_, err := r.Generate(context.Background(), "another idea", "default", "detailed", nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(svc.release)
	require.NoError(t, <-done)
	assert.False(t, r.Busy(TrackGenerate))
}

func TestTracksAreIndependent(t *testing.T) {
	svc := &fakeStreamer{fragments: []string{"x"}, failAfter: -1, release: make(chan struct{})}
	r := newRuntime(t, svc)

	done := make(chan error, 1)
	go func() {
		_, err := r.Generate(context.Background(), "idea", "default", "detailed", nil)
		done <- err
	}()
	require.Eventually(t, func() bool { return r.Busy(TrackGenerate) }, time.Second, 5*time.Millisecond)

	// The refinement track is free while the generation track streams.
	assert.False(t, r.Busy(TrackRefine))

	close(svc.release)
	require.NoError(t, <-done)
}
