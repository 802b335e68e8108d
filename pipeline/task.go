package pipeline

import (
	"context"
	"fmt"
)

// EventKind classifies an Event.
type EventKind int

const (
	EventStatus    EventKind = iota // a stage started
	EventProgress                   // one URL was fetched and written
	EventCompleted                  // the run finished successfully
	EventFailed                     // the run stopped on an error
)

// Status lines, in the order a full run emits them.
const (
	StatusReadingHTML = "Reading HTML file..."
	StatusExtracting  = "Extracting links..."
	StatusSavingLinks = "Saving links..."
	StatusReadingURLs = "Reading URLs..."
	StatusFetching    = "Fetching content..."
	StatusCompleted   = "Completed!"
	StatusFailed      = "Error occurred!"
)

// Event is a progress notification. Index and Total are set for
// EventProgress; Err is the per-URL error for EventProgress and the run
// error for EventFailed.
type Event struct {
	Kind   EventKind
	Status string
	Index  int
	Total  int
	URL    string
	Err    error
}

// String renders the event as a single log line.
func (e Event) String() string {
	switch e.Kind {
	case EventProgress:
		if e.Err != nil {
			return fmt.Sprintf("Processed URL %d/%d: %s (error: %v)", e.Index, e.Total, e.URL, e.Err)
		}
		return fmt.Sprintf("Processed URL %d/%d: %s", e.Index, e.Total, e.URL)
	case EventFailed:
		return fmt.Sprintf("Error: %v", e.Err)
	default:
		return e.Status
	}
}

// Task is a run executing on its own goroutine.
type Task struct {
	events chan Event
	done   chan struct{}
	result *Result
	err    error
}

// Start launches Run on a new goroutine and returns immediately.
func Start(ctx context.Context, cfg Config, opts ...Option) *Task {
	t := &Task{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}

	opts = append(opts, WithObserver(func(ev Event) {
		t.events <- ev
	}))

	go func() {
		defer close(t.done)
		defer close(t.events)
		t.result, t.err = Run(ctx, cfg, opts...)
	}()

	return t
}

// Events delivers progress in order and is closed when the run ends.
// Consumers must keep receiving until it is closed, or call Wait.
func (t *Task) Events() <-chan Event {
	return t.events
}

// Wait discards any events not yet received, blocks until the run ends and
// returns its result.
func (t *Task) Wait() (*Result, error) {
	for range t.events {
	}
	<-t.done
	return t.result, t.err
}

// Done is closed when the run ends.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
