package pubsub

import "context"

const (
	// AddedEvent signals a new resource, e.g. a normalized document entering
	// the pending set or a history entry being committed.
	AddedEvent EventType = "added"
	// UpdatedEvent signals an in-place progress update, e.g. the cumulative
	// text of an in-flight generation.
	UpdatedEvent EventType = "updated"
	// RemovedEvent signals a resource leaving a collection.
	RemovedEvent EventType = "removed"
	// FailedEvent signals a terminal per-resource error.
	FailedEvent EventType = "failed"
	// FinishedEvent signals clean completion of a long-running operation.
	FinishedEvent EventType = "finished"
)

type (
	// EventType identifies what happened to the payload.
	EventType string

	// Event is one occurrence in a resource's lifecycle.
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher delivers events to all current subscribers.
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)

// Subscriber hands out event channels that close when the context ends.
type Subscriber[T any] interface {
	Subscribe(context.Context) <-chan Event[T]
}
