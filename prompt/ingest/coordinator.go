// Package ingest owns the upload queue: admission governance over newly
// selected files, concurrent extraction dispatch, and the pending-documents
// collection that feeds context assembly.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"promptforge/prompt"
	"promptforge/prompt/extract"
	"promptforge/pubsub"
)

// RawFile is one file handle from the selection surface: metadata plus a
// byte-reading capability. Bytes are read only after admission.
type RawFile struct {
	Name         string
	Size         int64
	MIMEType     string
	LastModified time.Time
	Read         func() ([]byte, error)
}

// Task tracks one in-flight extraction.
type Task struct {
	Key  string
	Name string

	file RawFile
}

// TaskKey derives the duplicate-detection key from name, modification time and
// size. Two distinct files with identical metadata collide; a true duplicate
// with altered metadata slips through. Accepted approximation.
func TaskKey(f RawFile) string {
	return fmt.Sprintf("%s-%d-%d", f.Name, f.LastModified.UnixMilli(), f.Size)
}

// Reason classifies a per-file admission rejection.
type Reason string

const (
	ReasonTooMany   Reason = "too_many_files"
	ReasonTooLarge  Reason = "file_too_large"
	ReasonDuplicate Reason = "duplicate_file"
)

// Rejection reports one file refused during admission.
type Rejection struct {
	Name   string
	Reason Reason
}

func (r Rejection) Error() string {
	return fmt.Sprintf("rejected %s: %s", r.Name, r.Reason)
}

// Event is the payload published for settled extractions. Document is set on
// success; Err on failure.
type Event struct {
	Name     string
	Document prompt.NormalizedDocument
	Err      error
}

// Limits are the fixed governance rules enforced before any extraction work.
type Limits struct {
	MaxFiles    int
	MaxFileSize int64
}

// DefaultLimits returns the standard governance limits.
func DefaultLimits() Limits {
	return Limits{
		MaxFiles:    5,
		MaxFileSize: 30 << 20, // 30 MB
	}
}

// Coordinator is the sole owner of the pending-documents collection and the
// in-flight task set.
type Coordinator struct {
	limits   Limits
	registry *extract.Registry
	broker   *pubsub.Broker[Event]
	log      *zap.Logger

	mu       sync.Mutex
	pending  []prompt.NormalizedDocument
	inflight map[string]Task
}

// NewCoordinator creates a coordinator over the given extractor registry.
func NewCoordinator(registry *extract.Registry, limits Limits, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		limits:   limits,
		registry: registry,
		broker:   pubsub.NewBroker[Event](),
		log:      log,
		inflight: make(map[string]Task),
	}
}

// Broker exposes the event stream of settled extractions.
func (c *Coordinator) Broker() *pubsub.Broker[Event] {
	return c.broker
}

// Accept runs admission control over a batch in submission order, before any
// extraction begins. Admitted tasks reserve their slot in the in-flight set
// immediately so the count and duplicate checks see them; Run settles them.
func (c *Coordinator) Accept(batch []RawFile) ([]Task, []Rejection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var admitted []Task
	var rejections []Rejection

	for _, f := range batch {
		if len(c.pending)+len(c.inflight) >= c.limits.MaxFiles {
			rejections = append(rejections, Rejection{Name: f.Name, Reason: ReasonTooMany})
			continue
		}
		if f.Size > c.limits.MaxFileSize {
			rejections = append(rejections, Rejection{Name: f.Name, Reason: ReasonTooLarge})
			continue
		}

		key := TaskKey(f)
		if _, dup := c.inflight[key]; dup || c.pendingHasName(f.Name) {
			rejections = append(rejections, Rejection{Name: f.Name, Reason: ReasonDuplicate})
			continue
		}

		task := Task{Key: key, Name: f.Name, file: f}
		c.inflight[key] = task
		admitted = append(admitted, task)
	}

	for _, r := range rejections {
		c.log.Warn("file rejected",
			zap.String("name", r.Name),
			zap.String("reason", string(r.Reason)))
	}
	return admitted, rejections
}

// Run dispatches every admitted task concurrently. Each task settles
// independently: success publishes the normalized document into the pending
// set, failure publishes an error event; either way the task leaves the
// in-flight set. Completion order is unconstrained. There is no retry.
func (c *Coordinator) Run(ctx context.Context, admitted []Task) {
	for _, task := range admitted {
		go c.runOne(ctx, task)
	}
}

func (c *Coordinator) runOne(_ context.Context, task Task) {
	doc, err := c.extractOne(task)

	c.mu.Lock()
	delete(c.inflight, task.Key)
	if err == nil {
		c.pending = append(c.pending, doc)
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("extraction failed", zap.String("name", task.Name), zap.Error(err))
		c.broker.Publish(pubsub.FailedEvent, Event{Name: task.Name, Err: err})
		return
	}
	c.log.Info("document ingested",
		zap.String("name", doc.Name),
		zap.String("media_type", string(doc.MediaType)))
	c.broker.Publish(pubsub.AddedEvent, Event{Name: task.Name, Document: doc})
}

func (c *Coordinator) extractOne(task Task) (prompt.NormalizedDocument, error) {
	data, err := task.file.Read()
	if err != nil {
		return prompt.NormalizedDocument{}, fmt.Errorf("read %s: %w", task.Name, err)
	}
	return c.registry.Extract(task.Name, task.file.MIMEType, data)
}

// Pending returns a copy of the pending documents in publication order.
func (c *Coordinator) Pending() []prompt.NormalizedDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]prompt.NormalizedDocument, len(c.pending))
	copy(out, c.pending)
	return out
}

// InFlightCount returns the number of unsettled extractions.
func (c *Coordinator) InFlightCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}

// Remove drops a pending document by name. Documents are never mutated in
// place; removal is the only way one leaves the set.
func (c *Coordinator) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.pending[:0]
	for _, d := range c.pending {
		if d.Name != name {
			kept = append(kept, d)
		}
	}
	c.pending = kept
}

// Clear empties the pending set.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Shutdown closes the event broker.
func (c *Coordinator) Shutdown() {
	c.broker.Shutdown()
}

func (c *Coordinator) pendingHasName(name string) bool {
	for _, d := range c.pending {
		if d.Name == name {
			return true
		}
	}
	return false
}
