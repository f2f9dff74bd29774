package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/casefeed/backend/internal/cache"
	"github.com/casefeed/backend/internal/events"
	"github.com/casefeed/backend/internal/models"
	"github.com/casefeed/backend/internal/repositories"
	"github.com/google/uuid"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeActivityStore struct {
	mu        sync.Mutex
	clock     *fakeClock
	logs      []models.AuditLog
	docMatter map[uuid.UUID]uuid.UUID
	listCalls int
	err       error
}

func (f *fakeActivityStore) Log(_ context.Context, entry *models.AuditLog, matterID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	meta := map[string]any{}
	for k, v := range entry.Metadata {
		meta[k] = v
	}
	if matterID != nil {
		meta["matter_id"] = matterID.String()
	}
	entry.Metadata = meta
	entry.ID = uuid.New()
	at := f.clock.Now()
	entry.CreatedAt = &at
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeActivityStore) ListByMatter(_ context.Context, matterID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.AuditLog
	for _, l := range f.logs {
		switch {
		case l.ResourceType == models.ResourceMatter && l.ResourceID == matterID,
			l.ResourceType == models.ResourceDocument && f.docMatter[l.ResourceID] == matterID,
			l.Metadata["matter_id"] == matterID.String():
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(*out[j].CreatedAt) })
	limit, offset = repositories.ClampPage(limit, offset)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeActivityStore) add(l models.AuditLog) {
	f.logs = append(f.logs, l)
}

type fakeMatterStore struct {
	matters map[uuid.UUID]*models.Matter
	numbers map[string]bool
	err     error
}

func newFakeMatterStore(ids ...uuid.UUID) *fakeMatterStore {
	f := &fakeMatterStore{matters: map[uuid.UUID]*models.Matter{}, numbers: map[string]bool{}}
	for _, id := range ids {
		f.matters[id] = &models.Matter{ID: id, MatterNumber: id.String(), MatterName: "Existing", MatterType: "state", Status: "active"}
	}
	return f
}

func (f *fakeMatterStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.matters[id]
	return ok, nil
}

func (f *fakeMatterStore) GetByID(_ context.Context, id uuid.UUID) (*models.Matter, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.matters[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return m, nil
}

func (f *fakeMatterStore) GetByNumber(_ context.Context, number string) (*models.Matter, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.matters {
		if m.MatterNumber == number {
			return m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeMatterStore) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	m, ok := f.matters[id]
	if !ok {
		return repositories.ErrNotFound
	}
	delete(f.numbers, m.MatterNumber)
	delete(f.matters, id)
	return nil
}

func (f *fakeMatterStore) Create(_ context.Context, m *models.Matter) error {
	if f.err != nil {
		return f.err
	}
	if f.numbers[m.MatterNumber] {
		return repositories.ErrDuplicate
	}
	f.numbers[m.MatterNumber] = true
	m.ID = uuid.New()
	f.matters[m.ID] = m
	return nil
}

func (f *fakeMatterStore) List(_ context.Context, _ repositories.MatterFilter) ([]models.Matter, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Matter
	for _, m := range f.matters {
		out = append(out, *m)
	}
	return out, nil
}

type fakeCache struct {
	data        map[string][]byte
	byMatter    map[string][]string
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, byMatter: map[string][]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) error {
	b, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, matterID, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.byMatter[matterID] = append(c.byMatter[matterID], key)
	return nil
}

func (c *fakeCache) InvalidateMatter(_ context.Context, matterID string) error {
	c.invalidated = append(c.invalidated, matterID)
	for _, k := range c.byMatter[matterID] {
		delete(c.data, k)
	}
	delete(c.byMatter, matterID)
	return nil
}

type fakePublisher struct {
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, _ string, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}
