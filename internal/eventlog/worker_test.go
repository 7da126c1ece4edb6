package eventlog

import (
	"context"
	"sync"
	"testing"
)

type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Save(ctx context.Context, e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *captureLogger) saved() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func TestWorkerPersistsEvents(t *testing.T) {
	logger := &captureLogger{}
	worker := NewWorker(logger, 16)
	worker.Start()

	worker.Log(NewEvent(WithType("expense.created"), WithData(map[string]any{"id": 1})))
	worker.Log(NewEvent(WithType("settlement.recorded")))

	worker.Shutdown()

	saved := logger.saved()
	if len(saved) != 2 {
		t.Fatalf("saved %d events, want 2", len(saved))
	}
	types := map[string]bool{}
	for _, e := range saved {
		types[e.Type] = true
		if e.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Error("event was saved without an ID")
		}
		if e.CreatedAt.IsZero() {
			t.Error("event was saved without a timestamp")
		}
	}
	if !types["expense.created"] || !types["settlement.recorded"] {
		t.Errorf("saved types = %v, want both expense.created and settlement.recorded", types)
	}
}

func TestWorkerDropsWhenFull(t *testing.T) {
	logger := &captureLogger{}
	worker := NewWorker(logger, 1)

	// Not started: the buffer holds one event, the second is dropped.
	worker.Log(NewEvent(WithType("first")))
	worker.Log(NewEvent(WithType("second")))

	worker.Start()
	worker.Shutdown()

	saved := logger.saved()
	if len(saved) != 1 {
		t.Fatalf("saved %d events, want 1", len(saved))
	}
	if saved[0].Type != "first" {
		t.Errorf("saved type = %q, want %q", saved[0].Type, "first")
	}
}
