package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/casefeed/backend/internal/activity"
	"github.com/casefeed/backend/internal/cache"
	"github.com/casefeed/backend/internal/events"
	"github.com/casefeed/backend/internal/htmltext"
	"github.com/casefeed/backend/internal/models"
	"github.com/casefeed/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LogActivityInput struct {
	ActionType   string
	ResourceType string
	ResourceID   string
	MatterID     string
	Description  string
	Username     string
	Metadata     map[string]any
}

type TimelineQuery struct {
	Limit  int
	Offset int
	// Zone is an IANA time zone name; empty uses the service default.
	Zone string
	// Search marks matching terms in each entry's highlighted description.
	Search string
}

type TimelineEntry struct {
	activity.Activity
	RelativeTime string `json:"relative_time"`
	// Highlighted is the HTML-escaped description with search terms in
	// <mark>; set only when the request carried a search.
	Highlighted string `json:"highlighted_description,omitempty"`
}

type TimelineBucket struct {
	Label   string          `json:"label"`
	Entries []TimelineEntry `json:"entries"`
}

type Timeline struct {
	MatterID string `json:"matter_id"`
	Zone     string `json:"zone"`
	// Generation changes whenever the underlying page of activities does;
	// clients drop responses whose generation is older than one they hold.
	Generation string           `json:"generation"`
	Count      int              `json:"count"`
	Buckets    []TimelineBucket `json:"buckets"`
}

// cachedTimeline omits relative labels, which depend on the request time.
type cachedTimeline struct {
	Generation string                `json:"generation"`
	Count      int                   `json:"count"`
	Buckets    []activity.DateBucket `json:"buckets"`
}

type ActivityService struct {
	activities  ActivityStore
	matters     MatterStore
	cache       TimelineCache
	publisher   events.Publisher
	defaultZone *time.Location
	now         func() time.Time
	log         *zap.Logger
}

func NewActivityService(
	activities ActivityStore,
	matters MatterStore,
	timelineCache TimelineCache,
	publisher events.Publisher,
	defaultZone *time.Location,
	log *zap.Logger,
) *ActivityService {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &ActivityService{
		activities:  activities,
		matters:     matters,
		cache:       timelineCache,
		publisher:   publisher,
		defaultZone: defaultZone,
		now:         time.Now,
		log:         log,
	}
}

// Log validates and records one activity, then drops the matter's cached
// timelines and announces the entry on the activity stream.
func (s *ActivityService) Log(ctx context.Context, in LogActivityInput) (*activity.Activity, error) {
	in.ActionType = strings.TrimSpace(in.ActionType)
	in.ResourceType = strings.TrimSpace(in.ResourceType)
	if in.ActionType == "" || in.ResourceType == "" {
		return nil, fmt.Errorf("%w: action_type and resource_type are required", ErrValidation)
	}

	resourceID, err := uuid.Parse(in.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resource_id format: %s", ErrInvalidID, in.ResourceID)
	}

	var matterID *uuid.UUID
	if in.MatterID != "" {
		id, err := s.requireMatter(ctx, in.MatterID)
		if err != nil {
			return nil, err
		}
		matterID = &id
	}

	entry := &models.AuditLog{
		ActionType:   in.ActionType,
		ResourceType: in.ResourceType,
		ResourceID:   resourceID,
		Metadata:     in.Metadata,
	}
	if desc := htmltext.PlainText(in.Description); desc != "" {
		entry.Description = &desc
	}
	if in.Username != "" {
		entry.Username = &in.Username
	}

	if err := s.activities.Log(ctx, entry, matterID); err != nil {
		return nil, fmt.Errorf("log activity: %w", err)
	}

	a := entry.ToActivity(s.now())
	s.afterWrite(ctx, a)
	return &a, nil
}

func (s *ActivityService) afterWrite(ctx context.Context, a activity.Activity) {
	if a.MatterID == "" {
		s.log.Debug("activity without matter, timeline cache left to expire",
			zap.String("activity_id", a.ID), zap.String("resource_type", a.ResourceType))
	} else if err := s.cache.InvalidateMatter(ctx, a.MatterID); err != nil {
		s.log.Warn("timeline cache invalidation failed", zap.String("matter_id", a.MatterID), zap.Error(err))
	}

	err := s.publisher.Publish(ctx, events.StreamActivity, events.Event{
		Type: events.EventActivityLogged,
		Payload: map[string]any{
			"matter_id": a.MatterID,
			"activity":  a,
		},
	})
	if err != nil {
		s.log.Warn("publish activity event failed", zap.String("activity_id", a.ID), zap.Error(err))
	}
}

// ListForMatter returns one page of the matter's activities, newest first.
func (s *ActivityService) ListForMatter(ctx context.Context, matterID string, limit, offset int) ([]activity.Activity, error) {
	id, err := s.requireMatter(ctx, matterID)
	if err != nil {
		return nil, err
	}

	logs, err := s.activities.ListByMatter(ctx, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	now := s.now()
	out := make([]activity.Activity, 0, len(logs))
	for _, l := range logs {
		a := l.ToActivity(now)
		if a.MatterID == "" {
			a.MatterID = id.String()
		}
		out = append(out, a)
	}
	return out, nil
}

// TimelineForMatter returns one page of the matter's activities with uploads
// consolidated, grouped by calendar day in the requested zone.
func (s *ActivityService) TimelineForMatter(ctx context.Context, matterID string, q TimelineQuery) (*Timeline, error) {
	loc := s.defaultZone
	if q.Zone != "" {
		l, err := time.LoadLocation(q.Zone)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown time zone %q", ErrValidation, q.Zone)
		}
		loc = l
	}
	id, err := uuid.Parse(matterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid matter ID format: %s", ErrInvalidID, matterID)
	}
	// key on the canonical form so invalidation by metadata.matter_id hits it
	matterID = id.String()

	limit, offset := repositories.ClampPage(q.Limit, q.Offset)
	key := cache.TimelineKey(matterID, limit, offset, loc.String())

	var cached cachedTimeline
	err = s.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		return s.render(matterID, loc, q.Search, cached), nil
	case !errors.Is(err, cache.ErrMiss):
		s.log.Warn("timeline cache read failed", zap.String("key", key), zap.Error(err))
	}

	items, err := s.ListForMatter(ctx, matterID, limit, offset)
	if err != nil {
		return nil, err
	}

	cached = cachedTimeline{
		Generation: generation(items),
		Count:      len(items),
		Buckets:    activity.Timeline(items, loc),
	}
	if err := s.cache.Set(ctx, matterID, key, cached); err != nil {
		s.log.Warn("timeline cache write failed", zap.String("key", key), zap.Error(err))
	}
	return s.render(matterID, loc, q.Search, cached), nil
}

func (s *ActivityService) render(matterID string, loc *time.Location, search string, c cachedTimeline) *Timeline {
	search = strings.TrimSpace(search)
	now := s.now().In(loc)
	t := &Timeline{
		MatterID:   matterID,
		Zone:       loc.String(),
		Generation: c.Generation,
		Count:      c.Count,
		Buckets:    make([]TimelineBucket, 0, len(c.Buckets)),
	}
	for _, b := range c.Buckets {
		bucket := TimelineBucket{Label: b.Label, Entries: make([]TimelineEntry, 0, len(b.Activities))}
		for _, a := range b.Activities {
			entry := TimelineEntry{Activity: a}
			if at, ok := a.Timestamp(); ok {
				entry.RelativeTime = activity.FormatRelative(now, at.In(loc))
			}
			if search != "" {
				entry.Highlighted = activity.HighlightTerms(a.Description, search)
			}
			bucket.Entries = append(bucket.Entries, entry)
		}
		t.Buckets = append(t.Buckets, bucket)
	}
	return t
}

func (s *ActivityService) requireMatter(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid matter ID format: %s", ErrInvalidID, raw)
	}
	exists, err := s.matters.Exists(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check matter: %w", err)
	}
	if !exists {
		return uuid.Nil, fmt.Errorf("%w: matter %s", ErrNotFound, raw)
	}
	return id, nil
}

// generation fingerprints a page by ids and timestamps.
func generation(items []activity.Activity) string {
	h := sha256.New()
	for _, a := range items {
		h.Write([]byte(a.ID))
		h.Write([]byte{0})
		h.Write([]byte(a.CreatedAt))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
