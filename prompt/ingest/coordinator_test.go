package ingest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"promptforge/prompt/extract"
	"promptforge/pubsub"
)

func textFile(name, content string) RawFile {
	return RawFile{
		Name:         name,
		Size:         int64(len(content)),
		MIMEType:     "text/plain",
		LastModified: time.Unix(1700000000, 0),
		Read:         func() ([]byte, error) { return []byte(content), nil },
	}
}

func newCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c := NewCoordinator(extract.DefaultRegistry(), DefaultLimits(), zap.NewNop())
	t.Cleanup(c.Shutdown)
	return c
}

func TestAcceptAdmitsAllWithinLimits(t *testing.T) {
	c := newCoordinator(t)

	var batch []RawFile
	for i := 0; i < 5; i++ {
		batch = append(batch, textFile(fmt.Sprintf("f%d.txt", i), "content"))
	}

	admitted, rejections := c.Accept(batch)
	assert.Len(t, admitted, 5)
	assert.Empty(t, rejections)
}

func TestAcceptRejectsBeyondMaxFiles(t *testing.T) {
	c := newCoordinator(t)

	var batch []RawFile
	for i := 0; i < 7; i++ {
		batch = append(batch, textFile(fmt.Sprintf("f%d.txt", i), "content"))
	}

	admitted, rejections := c.Accept(batch)
	assert.Len(t, admitted, 5)
	require.Len(t, rejections, 2)
	for _, r := range rejections {
		assert.Equal(t, ReasonTooMany, r.Reason)
	}
}

func TestAcceptRejectsOversizedFile(t *testing.T) {
	c := newCoordinator(t)

	big := textFile("big.txt", "x")
	big.Size = 31 << 20

	admitted, rejections := c.Accept([]RawFile{big})
	assert.Empty(t, admitted)
	require.Len(t, rejections, 1)
	assert.Equal(t, ReasonTooLarge, rejections[0].Reason)
	assert.Empty(t, c.Pending())
}

func TestAcceptRejectsDuplicateSubmission(t *testing.T) {
	c := newCoordinator(t)
	f := textFile("notes.txt", "hello")

	admitted, rejections := c.Accept([]RawFile{f})
	require.Len(t, admitted, 1)
	require.Empty(t, rejections)

	// Same name, size and mtime while the first is still in flight.
	_, rejections = c.Accept([]RawFile{f})
	require.Len(t, rejections, 1)
	assert.Equal(t, ReasonDuplicate, rejections[0].Reason)
}

func TestAcceptRejectsDuplicateWithinBatch(t *testing.T) {
	c := newCoordinator(t)
	f := textFile("notes.txt", "hello")

	admitted, rejections := c.Accept([]RawFile{f, f})
	assert.Len(t, admitted, 1)
	require.Len(t, rejections, 1)
	assert.Equal(t, ReasonDuplicate, rejections[0].Reason)
}

func collectEvents(t *testing.T, events <-chan pubsub.Event[Event], n int) []pubsub.Event[Event] {
	t.Helper()
	var got []pubsub.Event[Event]
	deadline := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-deadline:
			t.Fatalf("timed out after %d of %d events", len(got), n)
		}
	}
	return got
}

func TestRunPublishesAllDocumentsRegardlessOfOrder(t *testing.T) {
	c := newCoordinator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := c.Broker().Subscribe(ctx)

	batch := []RawFile{
		textFile("a.txt", "alpha"),
		textFile("b.txt", "beta"),
		textFile("c.txt", "gamma"),
	}
	admitted, _ := c.Accept(batch)
	c.Run(ctx, admitted)

	got := collectEvents(t, events, 3)
	names := map[string]bool{}
	for _, ev := range got {
		assert.Equal(t, pubsub.AddedEvent, ev.Type)
		names[ev.Payload.Document.Name] = true
	}
	assert.Len(t, names, 3)
	assert.Len(t, c.Pending(), 3)
	assert.Equal(t, 0, c.InFlightCount())
}

func TestRunIsolatesFailures(t *testing.T) {
	c := newCoordinator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := c.Broker().Subscribe(ctx)

	broken := RawFile{
		Name:         "broken.pdf",
		Size:         10,
		MIMEType:     "application/pdf",
		LastModified: time.Unix(1700000000, 0),
		Read:         func() ([]byte, error) { return []byte("not a pdf"), nil },
	}
	batch := []RawFile{textFile("ok.txt", "fine"), broken}

	admitted, rejections := c.Accept(batch)
	require.Empty(t, rejections)
	c.Run(ctx, admitted)

	got := collectEvents(t, events, 2)
	var added, failed int
	for _, ev := range got {
		switch ev.Type {
		case pubsub.AddedEvent:
			added++
			assert.Equal(t, "ok.txt", ev.Payload.Document.Name)
		case pubsub.FailedEvent:
			failed++
			assert.Equal(t, "broken.pdf", ev.Payload.Name)
			assert.Error(t, ev.Payload.Err)
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, failed)
	assert.Len(t, c.Pending(), 1)
}

func TestRemoveAndClear(t *testing.T) {
	c := newCoordinator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := c.Broker().Subscribe(ctx)

	admitted, _ := c.Accept([]RawFile{textFile("a.txt", "alpha"), textFile("b.txt", "beta")})
	c.Run(ctx, admitted)
	collectEvents(t, events, 2)

	c.Remove("a.txt")
	pending := c.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "b.txt", pending[0].Name)

	c.Clear()
	assert.Empty(t, c.Pending())
}

func TestUnsupportedKindSurfacesAsFailure(t *testing.T) {
	c := newCoordinator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := c.Broker().Subscribe(ctx)

	zipFile := RawFile{
		Name:         "archive.zip",
		Size:         4,
		MIMEType:     "application/zip",
		LastModified: time.Unix(1700000000, 0),
		Read:         func() ([]byte, error) { return []byte("PK\x03\x04"), nil },
	}
	admitted, rejections := c.Accept([]RawFile{zipFile})
	require.Empty(t, rejections)
	c.Run(ctx, admitted)

	got := collectEvents(t, events, 1)
	assert.Equal(t, pubsub.FailedEvent, got[0].Type)
	assert.ErrorIs(t, got[0].Payload.Err, extract.ErrUnsupported)
	assert.Empty(t, c.Pending())
}
