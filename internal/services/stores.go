package services

import (
	"context"

	"github.com/casefeed/backend/internal/models"
	"github.com/casefeed/backend/internal/repositories"
	"github.com/google/uuid"
)

// ActivityStore is satisfied by *repositories.ActivityRepo.
type ActivityStore interface {
	Log(ctx context.Context, entry *models.AuditLog, matterID *uuid.UUID) error
	ListByMatter(ctx context.Context, matterID uuid.UUID, limit, offset int) ([]models.AuditLog, error)
}

// MatterStore is satisfied by *repositories.MatterRepo.
type MatterStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Matter, error)
	GetByNumber(ctx context.Context, number string) (*models.Matter, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, m *models.Matter) error
	List(ctx context.Context, f repositories.MatterFilter) ([]models.Matter, error)
}

// TimelineCache is satisfied by *cache.TimelineCache.
type TimelineCache interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, matterID, key string, value any) error
	InvalidateMatter(ctx context.Context, matterID string) error
}
