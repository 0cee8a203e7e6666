// Package session drives end-to-end generations: assembling the request,
// folding the fragment stream into a running total, and committing finished
// results to history. Refinement reuses the same machinery on its own track.
package session

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptforge/prompt"
	"promptforge/prompt/assemble"
	"promptforge/prompt/history"
	"promptforge/pubsub"
)

// Track separates the initial-generation and refinement state machines. A
// track never runs concurrently with itself.
type Track string

const (
	TrackGenerate Track = "generate"
	TrackRefine   Track = "refine"
)

var (
	// ErrEmptyIdea rejects blank input before any work starts.
	ErrEmptyIdea = errors.New("prompt idea is empty")
	// ErrBusy rejects a call while the same track is already streaming.
	ErrBusy = errors.New("a generation is already in progress")
)

// Event carries orchestrator progress to subscribers. Text holds the full
// cumulative output so far, not a delta, so consumers can render it directly.
type Event struct {
	Track Track
	Text  string
	Entry prompt.HistoryEntry
	Err   error
}

// Streamer is the external streaming text service: a finite, ordered,
// non-restartable sequence of fragments.
type Streamer interface {
	Stream(ctx context.Context, req prompt.GenerationRequest) iter.Seq2[string, error]
}

// Runtime orchestrates generations against one service and one history store.
type Runtime struct {
	svc    Streamer
	store  *history.Store
	broker *pubsub.Broker[Event]
	log    *zap.Logger

	mu   sync.Mutex
	busy map[Track]bool
}

// NewRuntime creates a session runtime.
func NewRuntime(svc Streamer, store *history.Store, log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{
		svc:    svc,
		store:  store,
		broker: pubsub.NewBroker[Event](),
		log:    log,
		busy:   make(map[Track]bool),
	}
}

// Broker exposes the orchestrator's event stream.
func (r *Runtime) Broker() *pubsub.Broker[Event] {
	return r.broker
}

// Store exposes the history store.
func (r *Runtime) Store() *history.Store {
	return r.store
}

// Generate runs one full generation on the initial track and returns the
// committed entry. It blocks until the stream ends; callers wanting live
// progress subscribe to the broker and run this in a goroutine.
func (r *Runtime) Generate(ctx context.Context, idea, personaKey, modeKey string, docs []prompt.NormalizedDocument) (prompt.HistoryEntry, error) {
	return r.run(ctx, TrackGenerate, idea, personaKey, modeKey, docs)
}

// RefineIdea wraps the previous result and the refinement instruction in the
// fixed template that turns a refinement into a plain generation call. The
// instruction is interpolated verbatim; quotes and backslashes inside it must
// survive unescaped.
func RefineIdea(previousResult, instruction string) string {
	return fmt.Sprintf("Here is the prompt to refine:\n---\n%s\n---\nApply this instruction: \"%s\"", previousResult, instruction)
}

// Refine resubmits the previous result plus an instruction on the refinement
// track.
func (r *Runtime) Refine(ctx context.Context, previousResult, instruction, personaKey, modeKey string, docs []prompt.NormalizedDocument) (prompt.HistoryEntry, error) {
	if strings.TrimSpace(instruction) == "" {
		return prompt.HistoryEntry{}, ErrEmptyIdea
	}
	return r.run(ctx, TrackRefine, RefineIdea(previousResult, instruction), personaKey, modeKey, docs)
}

// Busy reports whether a track is currently streaming.
func (r *Runtime) Busy(track Track) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy[track]
}

// Shutdown closes the event broker.
func (r *Runtime) Shutdown() {
	r.broker.Shutdown()
}

func (r *Runtime) run(ctx context.Context, track Track, idea, personaKey, modeKey string, docs []prompt.NormalizedDocument) (prompt.HistoryEntry, error) {
	if strings.TrimSpace(idea) == "" {
		return prompt.HistoryEntry{}, ErrEmptyIdea
	}
	if err := r.acquire(track); err != nil {
		return prompt.HistoryEntry{}, err
	}
	defer r.release(track)

	req := assemble.Assemble(idea, docs, personaKey, modeKey)
	r.log.Info("generation started",
		zap.String("track", string(track)),
		zap.String("persona", personaKey),
		zap.String("mode", modeKey),
		zap.Int("attachments", len(req.Attachments)))

	// Fold the stream, republishing the cumulative text after every fragment.
	var acc strings.Builder
	for fragment, err := range r.svc.Stream(ctx, req) {
		if err != nil {
			r.log.Warn("generation failed", zap.String("track", string(track)), zap.Error(err))
			r.broker.Publish(pubsub.FailedEvent, Event{Track: track, Err: err})
			return prompt.HistoryEntry{}, err
		}
		acc.WriteString(fragment)
		r.broker.Publish(pubsub.UpdatedEvent, Event{Track: track, Text: acc.String()})
	}

	entry := prompt.HistoryEntry{
		ID:        uuid.NewString(),
		Idea:      idea,
		Result:    acc.String(),
		Persona:   personaKey,
		Mode:      modeKey,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.Append(ctx, entry); err != nil {
		r.log.Error("history commit failed", zap.Error(err))
		r.broker.Publish(pubsub.FailedEvent, Event{Track: track, Err: err})
		return prompt.HistoryEntry{}, err
	}

	r.log.Info("generation finished",
		zap.String("track", string(track)),
		zap.String("entry_id", entry.ID),
		zap.Int("result_chars", len(entry.Result)))
	r.broker.Publish(pubsub.FinishedEvent, Event{Track: track, Text: entry.Result, Entry: entry})
	return entry, nil
}

func (r *Runtime) acquire(track Track) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy[track] {
		return ErrBusy
	}
	r.busy[track] = true
	return nil
}

func (r *Runtime) release(track Track) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy[track] = false
}
