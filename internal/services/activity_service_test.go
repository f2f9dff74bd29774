package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/casefeed/backend/internal/activity"
	"github.com/casefeed/backend/internal/events"
	"github.com/casefeed/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type activityFixture struct {
	svc       *ActivityService
	clock     *fakeClock
	store     *fakeActivityStore
	matters   *fakeMatterStore
	cache     *fakeCache
	publisher *fakePublisher
	matterID  uuid.UUID
}

func newActivityFixture(t *testing.T) *activityFixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)}
	matterID := uuid.New()
	f := &activityFixture{
		clock:     clock,
		store:     &fakeActivityStore{clock: clock, docMatter: map[uuid.UUID]uuid.UUID{}},
		matters:   newFakeMatterStore(matterID),
		cache:     newFakeCache(),
		publisher: &fakePublisher{},
		matterID:  matterID,
	}
	f.svc = NewActivityService(f.store, f.matters, f.cache, f.publisher, time.UTC, zap.NewNop())
	f.svc.now = clock.Now
	return f
}

func (f *activityFixture) logAt(t *testing.T, at time.Time, in LogActivityInput) *activity.Activity {
	t.Helper()
	f.clock.t = at
	a, err := f.svc.Log(context.Background(), in)
	require.NoError(t, err)
	return a
}

func TestActivityServiceLogValidation(t *testing.T) {
	f := newActivityFixture(t)
	valid := uuid.NewString()

	tests := []struct {
		name string
		in   LogActivityInput
		want error
	}{
		{"missing action", LogActivityInput{ResourceType: "document", ResourceID: valid}, ErrValidation},
		{"blank resource type", LogActivityInput{ActionType: "upload", ResourceType: "  ", ResourceID: valid}, ErrValidation},
		{"bad resource id", LogActivityInput{ActionType: "upload", ResourceType: "document", ResourceID: "doc-1"}, ErrInvalidID},
		{"bad matter id", LogActivityInput{ActionType: "upload", ResourceType: "document", ResourceID: valid, MatterID: "nope"}, ErrInvalidID},
		{"unknown matter", LogActivityInput{ActionType: "upload", ResourceType: "document", ResourceID: valid, MatterID: uuid.NewString()}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Log(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.store.logs)
	assert.Empty(t, f.publisher.events)
}

func TestActivityServiceLogRecordsAndPublishes(t *testing.T) {
	f := newActivityFixture(t)
	docID := uuid.New()

	a, err := f.svc.Log(context.Background(), LogActivityInput{
		ActionType:   "upload",
		ResourceType: "document",
		ResourceID:   docID.String(),
		MatterID:     f.matterID.String(),
		Description:  "<b>Uploaded</b> \"exhibits/a.pdf\"",
		Username:     "paralegal",
		Metadata:     map[string]any{"file_size_mb": 1.25},
	})
	require.NoError(t, err)

	assert.Equal(t, f.matterID.String(), a.MatterID)
	assert.Equal(t, `Uploaded "exhibits/a.pdf"`, a.Description)
	assert.Equal(t, "paralegal", a.Username)
	assert.Equal(t, 1.25, a.Metadata.Float("file_size_mb"))
	assert.Equal(t, f.matterID.String(), a.Metadata.String("matter_id"))
	assert.Equal(t, "2025-01-05T12:00:00Z", a.CreatedAt)

	assert.Equal(t, []string{f.matterID.String()}, f.cache.invalidated)
	require.Len(t, f.publisher.events, 1)
	ev := f.publisher.events[0]
	assert.Equal(t, events.EventActivityLogged, ev.Type)
	assert.Equal(t, f.matterID.String(), ev.MatterID())
}

func TestActivityServiceLogStoreFailure(t *testing.T) {
	f := newActivityFixture(t)
	f.store.err = errors.New("connection refused")

	_, err := f.svc.Log(context.Background(), LogActivityInput{
		ActionType: "review", ResourceType: "fact", ResourceID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, f.publisher.events)
}

func TestActivityServiceListForMatter(t *testing.T) {
	f := newActivityFixture(t)
	docID := uuid.New()
	f.store.docMatter[docID] = f.matterID
	created := f.clock.t.Add(-time.Hour)
	f.store.add(models.AuditLog{ID: uuid.New(), ActionType: "process", ResourceType: "document", ResourceID: docID, CreatedAt: &created})
	f.logAt(t, f.clock.t, LogActivityInput{ActionType: "update", ResourceType: "matter", ResourceID: f.matterID.String()})
	f.logAt(t, f.clock.t, LogActivityInput{ActionType: "update", ResourceType: "matter", ResourceID: uuid.NewString()})

	items, err := f.svc.ListForMatter(context.Background(), f.matterID.String(), 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "update", items[0].ActionType)
	assert.Equal(t, "process", items[1].ActionType)
	for _, a := range items {
		assert.Equal(t, f.matterID.String(), a.MatterID)
	}

	_, err = f.svc.ListForMatter(context.Background(), "not-a-uuid", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = f.svc.ListForMatter(context.Background(), uuid.NewString(), 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityServiceTimeline(t *testing.T) {
	f := newActivityFixture(t)
	mid := f.matterID.String()
	day := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	f.logAt(t, day, LogActivityInput{ActionType: "upload", ResourceType: "document", ResourceID: uuid.NewString(), MatterID: mid,
		Metadata: map[string]any{"filename": "folderA/doc1.pdf", "file_size_mb": 2}})
	f.logAt(t, day.Add(5*time.Second), LogActivityInput{ActionType: "upload", ResourceType: "document", ResourceID: uuid.NewString(), MatterID: mid,
		Metadata: map[string]any{"filename": "folderA/doc2.pdf", "file_size_mb": 3}})
	f.logAt(t, day.Add(time.Hour), LogActivityInput{ActionType: "create", ResourceType: "matter", ResourceID: mid, Description: "Created matter"})
	f.logAt(t, day.Add(-48*time.Hour), LogActivityInput{ActionType: "review", ResourceType: "fact", ResourceID: uuid.NewString(), MatterID: mid})

	f.clock.t = day.Add(2 * time.Hour)
	tl, err := f.svc.TimelineForMatter(context.Background(), mid, TimelineQuery{})
	require.NoError(t, err)

	assert.Equal(t, "UTC", tl.Zone)
	assert.Equal(t, 4, tl.Count)
	assert.NotEmpty(t, tl.Generation)
	require.Len(t, tl.Buckets, 2)
	assert.Equal(t, "Jan 5, 2025", tl.Buckets[0].Label)
	assert.Equal(t, "Jan 3, 2025", tl.Buckets[1].Label)

	today := tl.Buckets[0].Entries
	require.Len(t, today, 2)
	assert.Equal(t, "create", today[0].ActionType)
	assert.Equal(t, "1 hour ago", today[0].RelativeTime)
	assert.Equal(t, "Uploaded 2 files from 1 folder (5.00 MB)", today[1].Description)
	assert.Equal(t, "2 hours ago", today[1].RelativeTime)
	assert.Equal(t, "2 days ago", tl.Buckets[1].Entries[0].RelativeTime)

	// served from cache, relative labels recomputed
	f.clock.Advance(time.Hour)
	again, err := f.svc.TimelineForMatter(context.Background(), mid, TimelineQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.listCalls)
	assert.Equal(t, tl.Generation, again.Generation)
	assert.Equal(t, "2 hours ago", again.Buckets[0].Entries[0].RelativeTime)
	c, ok := again.Buckets[0].Entries[1].Consolidation()
	require.True(t, ok)
	assert.Equal(t, 2, c.FileCount)
	assert.Len(t, c.OriginalActivities, 2)

	// a new write invalidates and changes the generation
	f.logAt(t, f.clock.t, LogActivityInput{ActionType: "delete", ResourceType: "entity", ResourceID: uuid.NewString(), MatterID: mid})
	fresh, err := f.svc.TimelineForMatter(context.Background(), mid, TimelineQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.listCalls)
	assert.NotEqual(t, tl.Generation, fresh.Generation)
	assert.Equal(t, 5, fresh.Count)
}

func TestActivityServiceTimelineZone(t *testing.T) {
	f := newActivityFixture(t)
	mid := f.matterID.String()
	f.logAt(t, time.Date(2025, 1, 6, 3, 0, 0, 0, time.UTC), LogActivityInput{ActionType: "update", ResourceType: "matter", ResourceID: mid})

	tl, err := f.svc.TimelineForMatter(context.Background(), mid, TimelineQuery{Zone: "America/New_York"})
	require.NoError(t, err)
	require.Len(t, tl.Buckets, 1)
	assert.Equal(t, "America/New_York", tl.Zone)
	assert.Equal(t, "Jan 5, 2025", tl.Buckets[0].Label)

	_, err = f.svc.TimelineForMatter(context.Background(), mid, TimelineQuery{Zone: "Mars/Olympus_Mons"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestActivityServiceTimelineEmpty(t *testing.T) {
	f := newActivityFixture(t)

	tl, err := f.svc.TimelineForMatter(context.Background(), f.matterID.String(), TimelineQuery{Limit: 50})
	require.NoError(t, err)
	assert.Zero(t, tl.Count)
	assert.NotNil(t, tl.Buckets)
	assert.Empty(t, tl.Buckets)
}

func TestActivityServiceTimelineCanonicalizesMatterID(t *testing.T) {
	f := newActivityFixture(t)
	mid := f.matterID.String()
	upper := strings.ToUpper(mid)
	braced := "{" + mid + "}"

	before, err := f.svc.TimelineForMatter(context.Background(), upper, TimelineQuery{})
	require.NoError(t, err)
	assert.Zero(t, before.Count)
	assert.Equal(t, mid, before.MatterID)

	f.logAt(t, f.clock.t, LogActivityInput{ActionType: "update", ResourceType: "matter", ResourceID: mid})

	for _, raw := range []string{upper, braced, mid} {
		tl, err := f.svc.TimelineForMatter(context.Background(), raw, TimelineQuery{})
		require.NoError(t, err)
		assert.Equal(t, 1, tl.Count, raw)
		assert.NotEqual(t, before.Generation, tl.Generation, raw)
	}

	_, err = f.svc.TimelineForMatter(context.Background(), "matter-1", TimelineQuery{})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestActivityServiceTimelineHighlightsSearch(t *testing.T) {
	f := newActivityFixture(t)
	mid := f.matterID.String()
	f.logAt(t, f.clock.t, LogActivityInput{ActionType: "review", ResourceType: "fact", ResourceID: uuid.NewString(), MatterID: mid,
		Description: "Reviewed deposition of Smith & Co"})

	plain, err := f.svc.TimelineForMatter(context.Background(), mid, TimelineQuery{})
	require.NoError(t, err)
	assert.Empty(t, plain.Buckets[0].Entries[0].Highlighted)

	tl, err := f.svc.TimelineForMatter(context.Background(), mid, TimelineQuery{Search: "smith depo"})
	require.NoError(t, err)
	require.Len(t, tl.Buckets, 1)
	entry := tl.Buckets[0].Entries[0]
	assert.Equal(t, "Reviewed <mark>depo</mark>sition of <mark>Smith</mark> &amp; Co", entry.Highlighted)
	assert.Equal(t, "Reviewed deposition of Smith & Co", entry.Description)
	assert.Equal(t, 1, f.store.listCalls)
}
