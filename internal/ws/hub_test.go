package ws

import (
	"encoding/json"
	"testing"
)

func TestPublishQueuesEvent(t *testing.T) {
	hub := NewHub()

	hub.Publish(Event{Type: "task.created", TaskID: 7, ActorID: 3})

	select {
	case payload := <-hub.Broadcast:
		var e Event
		if err := json.Unmarshal(payload, &e); err != nil {
			t.Fatalf("Broadcast payload is not valid JSON: %v", err)
		}
		if e.Type != "task.created" || e.TaskID != 7 || e.ActorID != 3 {
			t.Errorf("Unexpected event: %+v", e)
		}
	default:
		t.Fatal("Expected a queued event")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()

	// No reader; publishing past the buffer must drop, not hang.
	for i := 0; i < cap(hub.Broadcast)*2; i++ {
		hub.Publish(Event{Type: "task.updated", TaskID: i})
	}

	if got := len(hub.Broadcast); got != cap(hub.Broadcast) {
		t.Errorf("Expected a full buffer of %d events, got %d", cap(hub.Broadcast), got)
	}
}
