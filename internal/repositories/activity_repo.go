package repositories

import (
	"context"

	"github.com/casefeed/backend/internal/activity"
	"github.com/casefeed/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 500
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

// Log inserts entry and fills its ID and CreatedAt. A non-nil matterID is
// recorded under metadata.matter_id so non-matter resources still show up in
// the matter's feed.
func (r *ActivityRepo) Log(ctx context.Context, entry *models.AuditLog, matterID *uuid.UUID) error {
	meta := entry.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	if matterID != nil {
		copied := make(map[string]any, len(meta)+1)
		for k, v := range meta {
			copied[k] = v
		}
		copied[activity.MetaMatterID] = matterID.String()
		meta = copied
	}
	entry.Metadata = meta

	return r.pool.QueryRow(ctx, `
		INSERT INTO audit_log (action_type, resource_type, resource_id, description, username, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, entry.ActionType, entry.ResourceType, entry.ResourceID, entry.Description, entry.Username, entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListByMatter returns the matter's activities newest first: entries about
// the matter itself, about any of its documents, or tagged with its id in
// metadata.
func (r *ActivityRepo) ListByMatter(ctx context.Context, matterID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	limit, offset = ClampPage(limit, offset)

	rows, err := r.pool.Query(ctx, `
		SELECT id, action_type, resource_type, resource_id, description, username, metadata, created_at
		FROM audit_log
		WHERE (resource_type = 'matter' AND resource_id = $1)
		   OR (resource_type = 'document' AND resource_id IN (SELECT id FROM documents WHERE matter_id = $1))
		   OR metadata @> jsonb_build_object('matter_id', $1::text)
		ORDER BY created_at DESC NULLS LAST
		LIMIT $2 OFFSET $3
	`, matterID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.ActionType, &l.ResourceType, &l.ResourceID,
			&l.Description, &l.Username, &l.Metadata, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ClampPage applies the default and maximum page size and floors offset at 0.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
