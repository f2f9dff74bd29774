// Package activity shapes a matter's audit log into the timeline the case
// front end renders: upload consolidation, calendar-day buckets and
// relative time labels. Everything here is a pure function over in-memory
// slices.
package activity

import (
	"strings"
	"time"
)

// Known action types. Matching is case-insensitive.
const (
	ActionImport  = "import"
	ActionUpload  = "upload"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionProcess = "process"
	ActionReview  = "review"
)

// Metadata keys read or written by consolidation.
const (
	MetaFileSizeMB         = "file_size_mb"
	MetaFilename           = "filename"
	MetaMatterID           = "matter_id"
	MetaConsolidated       = "consolidated"
	MetaFileCount          = "file_count"
	MetaFolderCount        = "folder_count"
	MetaTotalSizeMB        = "total_size_mb"
	MetaOriginalActivities = "original_activities"
)

type Activity struct {
	ID           string   `json:"id"`
	ActionType   string   `json:"action_type"`
	ResourceType string   `json:"resource_type"`
	ResourceID   string   `json:"resource_id"`
	MatterID     string   `json:"matter_id,omitempty"`
	Description  string   `json:"description"`
	Username     string   `json:"username,omitempty"`
	CreatedAt    string   `json:"created_at"`
	Metadata     Metadata `json:"metadata,omitempty"`
}

// Timestamp parses CreatedAt. ok is false when the value is empty or not a
// recognisable ISO 8601 instant.
func (a Activity) Timestamp() (time.Time, bool) {
	return ParseTimestamp(a.CreatedAt)
}

// IsUpload reports whether the activity is an import or upload.
func (a Activity) IsUpload() bool {
	return strings.EqualFold(a.ActionType, ActionImport) || strings.EqualFold(a.ActionType, ActionUpload)
}

// IsConsolidated reports whether the activity is a synthetic upload summary.
func (a Activity) IsConsolidated() bool {
	v, _ := a.Metadata[MetaConsolidated].(bool)
	return v
}

// Consolidation returns the typed summary of a consolidated activity.
func (a Activity) Consolidation() (Consolidation, bool) {
	if !a.IsConsolidated() {
		return Consolidation{}, false
	}
	c := Consolidation{
		FileCount:   int(a.Metadata.Float(MetaFileCount)),
		FolderCount: int(a.Metadata.Float(MetaFolderCount)),
		TotalSizeMB: a.Metadata.Float(MetaTotalSizeMB),
	}
	switch orig := a.Metadata[MetaOriginalActivities].(type) {
	case []OriginalActivity:
		c.OriginalActivities = orig
	case []any:
		// decoded from JSON
		for _, item := range orig {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			mm := Metadata(m)
			c.OriginalActivities = append(c.OriginalActivities, OriginalActivity{
				ID:          mm.String("id"),
				Description: mm.String("description"),
				Filename:    mm.String("filename"),
			})
		}
	}
	return c, true
}

// OriginalActivity points back at one upload folded into a summary.
type OriginalActivity struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Filename    string `json:"filename"`
}

type Consolidation struct {
	FileCount          int                `json:"file_count"`
	FolderCount        int                `json:"folder_count"`
	TotalSizeMB        float64            `json:"total_size_mb"`
	OriginalActivities []OriginalActivity `json:"original_activities"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 and the offset-less isoformat the
// ingestion backend emits. Values without an offset are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
