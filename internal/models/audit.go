package models

import (
	"time"

	"github.com/casefeed/backend/internal/activity"
	"github.com/google/uuid"
)

// Resource types an audit entry can point at.
const (
	ResourceMatter   = "matter"
	ResourceDocument = "document"
	ResourceFact     = "fact"
	ResourceEntity   = "entity"
)

// AuditLog is one persisted activity row.
type AuditLog struct {
	ID           uuid.UUID      `json:"id"`
	ActionType   string         `json:"action_type"`
	ResourceType string         `json:"resource_type"`
	ResourceID   uuid.UUID      `json:"resource_id"`
	Description  *string        `json:"description,omitempty"`
	Username     *string        `json:"username,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
}

// MatterID returns the matter recorded in metadata, falling back to the
// resource itself when the entry is about a matter.
func (l AuditLog) MatterID() string {
	if id, ok := l.Metadata[activity.MetaMatterID].(string); ok && id != "" {
		return id
	}
	if l.ResourceType == ResourceMatter {
		return l.ResourceID.String()
	}
	return ""
}

// ToActivity converts a row into the timeline representation. A missing
// created_at becomes now, as the legacy API reported it.
func (l AuditLog) ToActivity(now time.Time) activity.Activity {
	a := activity.Activity{
		ID:           l.ID.String(),
		ActionType:   l.ActionType,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID.String(),
		MatterID:     l.MatterID(),
		Metadata:     activity.Metadata(l.Metadata),
	}
	if l.Description != nil {
		a.Description = *l.Description
	}
	if l.Username != nil {
		a.Username = *l.Username
	}
	if l.CreatedAt != nil {
		a.CreatedAt = l.CreatedAt.Format(time.RFC3339Nano)
	} else {
		a.CreatedAt = now.Format(time.RFC3339Nano)
	}
	return a
}
