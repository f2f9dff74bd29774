package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDateEmpty(t *testing.T) {
	groups := GroupByDate(nil, time.UTC)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	assert.Empty(t, Timeline([]Activity{}, time.UTC))
}

func TestGroupByDateScenario(t *testing.T) {
	in := []Activity{
		{ID: "1", ActionType: "upload", CreatedAt: "2025-01-05T10:00:00Z", Metadata: Metadata{MetaFilename: "folderA/doc1.pdf", MetaFileSizeMB: 2}},
		{ID: "2", ActionType: "upload", CreatedAt: "2025-01-05T10:00:05Z", Metadata: Metadata{MetaFilename: "folderA/doc2.pdf", MetaFileSizeMB: 3}},
		{ID: "3", ActionType: "create", CreatedAt: "2025-01-05T11:00:00Z", Description: "Created matter"},
	}

	groups := GroupByDate(in, time.UTC)

	require.Len(t, groups, 1)
	bucket := groups["Jan 5, 2025"]
	require.Len(t, bucket, 2)
	assert.Equal(t, "3", bucket[0].ID)

	c, ok := bucket[1].Consolidation()
	require.True(t, ok)
	assert.Equal(t, 2, c.FileCount)
	assert.Equal(t, 1, c.FolderCount)
	assert.InDelta(t, 5.0, c.TotalSizeMB, 1e-9)
	assert.Equal(t, "Uploaded 2 files from 1 folder (5.00 MB)", bucket[1].Description)
}

func TestGroupByDateUsesLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	in := []Activity{
		{ID: "late", ActionType: "update", CreatedAt: "2025-01-06T03:00:00Z"},
		{ID: "early", ActionType: "delete", CreatedAt: "2025-01-05T15:00:00Z"},
		{ID: "next", ActionType: "review", CreatedAt: "2025-01-06T06:00:00Z"},
	}

	utc := GroupByDate(in, time.UTC)
	assert.Len(t, utc["Jan 5, 2025"], 1)
	assert.Len(t, utc["Jan 6, 2025"], 2)

	local := GroupByDate(in, est)
	require.Len(t, local["Jan 5, 2025"], 2)
	assert.Equal(t, "late", local["Jan 5, 2025"][0].ID)
	assert.Equal(t, "early", local["Jan 5, 2025"][1].ID)
	assert.Len(t, local["Jan 6, 2025"], 1)
}

func TestTimelineOrdersBuckets(t *testing.T) {
	in := []Activity{
		{ID: "old", ActionType: "create", CreatedAt: "2024-12-31T09:00:00Z"},
		{ID: "undated", ActionType: "review", CreatedAt: ""},
		{ID: "new-a", ActionType: "update", CreatedAt: "2025-01-05T08:00:00Z"},
		{ID: "broken", ActionType: "upload", CreatedAt: "yesterday"},
		{ID: "mid", ActionType: "process", CreatedAt: "2025-01-02T12:00:00+02:00"},
		{ID: "new-b", ActionType: "review", CreatedAt: "2025-01-05T18:30:00Z"},
	}

	buckets := Timeline(in, time.UTC)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"Jan 5, 2025", "Jan 2, 2025", "Dec 31, 2024", UnscheduledLabel}, labels)
	assert.Equal(t, "new-b", buckets[0].Activities[0].ID)
	assert.Equal(t, "new-a", buckets[0].Activities[1].ID)

	var unscheduled []string
	for _, a := range buckets[3].Activities {
		unscheduled = append(unscheduled, a.ID)
	}
	assert.ElementsMatch(t, []string{"undated", "broken"}, unscheduled)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  time.Time
	}{
		{"2025-01-05T10:00:00Z", true, time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2025-01-05T10:00:00.123456+00:00", true, time.Date(2025, 1, 5, 10, 0, 0, 123456000, time.UTC)},
		{"2025-01-05T10:00:00.5", true, time.Date(2025, 1, 5, 10, 0, 0, 500000000, time.UTC)},
		{"2025-01-05 10:00:00", true, time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2025-01-05", true, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"   ", false, time.Time{}},
		{"05/01/2025", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}
