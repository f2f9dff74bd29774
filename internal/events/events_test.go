package events

import (
	"encoding/json"
	"testing"
)

func TestEventMatterID(t *testing.T) {
	var e Event
	if err := json.Unmarshal([]byte(`{"type":"activity_logged","payload":{"matter_id":"m-7","activity":{"id":"a"}}}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.MatterID() != "m-7" {
		t.Errorf("MatterID() = %q", e.MatterID())
	}
	if (Event{Payload: map[string]any{"matter_id": 3}}).MatterID() != "" {
		t.Error("non-string matter_id should read as empty")
	}
	if (Event{}).MatterID() != "" {
		t.Error("nil payload should read as empty")
	}
}
