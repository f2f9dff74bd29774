package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/casefeed/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const matterColumns = `id, matter_number, matter_name, matter_type, jurisdiction, court_name,
	case_number, status, description, opened_date, closed_date, created_by, created_at, updated_at`

type MatterRepo struct {
	pool *pgxpool.Pool
}

func NewMatterRepo(pool *pgxpool.Pool) *MatterRepo {
	return &MatterRepo{pool: pool}
}

func (r *MatterRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM matters WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *MatterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Matter, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+matterColumns+` FROM matters WHERE id = $1`, id)
	m, err := scanMatter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *MatterRepo) GetByNumber(ctx context.Context, number string) (*models.Matter, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+matterColumns+` FROM matters WHERE matter_number = $1`, number)
	m, err := scanMatter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

// Delete removes the matter; its documents go with it by cascade. Audit rows
// are kept.
func (r *MatterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM matters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MatterRepo) Create(ctx context.Context, m *models.Matter) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO matters (matter_number, matter_name, matter_type, jurisdiction, court_name,
		                     case_number, status, description, opened_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, m.MatterNumber, m.MatterName, m.MatterType, m.Jurisdiction, m.CourtName,
		m.CaseNumber, m.Status, m.Description, m.OpenedDate, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("matter number %q: %w", m.MatterNumber, ErrDuplicate)
	}
	return err
}

type MatterFilter struct {
	Status *string
	Search string
	Limit  int
	Offset int
}

func (r *MatterRepo) List(ctx context.Context, f MatterFilter) ([]models.Matter, error) {
	query := `SELECT ` + matterColumns + ` FROM matters`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, fmt.Sprintf("(matter_name ILIKE $%d OR matter_number ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+s+"%")
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit, offset := ClampMatterPage(f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matters []models.Matter
	for rows.Next() {
		m, err := scanMatter(rows)
		if err != nil {
			return nil, err
		}
		matters = append(matters, *m)
	}
	return matters, rows.Err()
}

// ClampMatterPage applies the matter list paging bounds: limit defaults to
// 20 when out of (0, 100], negative offsets become 0.
func ClampMatterPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func scanMatter(row pgx.Row) (*models.Matter, error) {
	var m models.Matter
	err := row.Scan(&m.ID, &m.MatterNumber, &m.MatterName, &m.MatterType, &m.Jurisdiction,
		&m.CourtName, &m.CaseNumber, &m.Status, &m.Description, &m.OpenedDate, &m.ClosedDate,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
