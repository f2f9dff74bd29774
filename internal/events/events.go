package events

import "context"

// Event types
const (
	EventActivityLogged = "activity_logged"
	EventMatterCreated  = "matter_created"
)

// StreamActivity carries every activity_logged event; subscribers filter by
// payload matter_id.
const StreamActivity = "events:activity"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// MatterID returns payload.matter_id, or "" when absent.
func (e Event) MatterID() string {
	id, _ := e.Payload["matter_id"].(string)
	return id
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
