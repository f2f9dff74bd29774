package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casefeed/backend/internal/activity"
	"github.com/casefeed/backend/internal/events"
	"github.com/casefeed/backend/internal/models"
	"github.com/casefeed/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityLogger records activities; *ActivityService implements it.
type ActivityLogger interface {
	Log(ctx context.Context, in LogActivityInput) (*activity.Activity, error)
}

type CreateMatterInput struct {
	MatterNumber string
	MatterName   string
	MatterType   string
	Jurisdiction *string
	CourtName    *string
	CaseNumber   *string
	Status       string
	Description  *string
	OpenedDate   *time.Time
}

// DeletedMatter echoes the identity of a removed matter.
type DeletedMatter struct {
	ID           string `json:"id"`
	MatterNumber string `json:"matter_number"`
	MatterName   string `json:"matter_name"`
	Deleted      bool   `json:"deleted"`
}

type MatterService struct {
	matters   MatterStore
	activity  ActivityLogger
	publisher events.Publisher
	log       *zap.Logger
}

func NewMatterService(matters MatterStore, activityLogger ActivityLogger, publisher events.Publisher, log *zap.Logger) *MatterService {
	return &MatterService{matters: matters, activity: activityLogger, publisher: publisher, log: log}
}

func (s *MatterService) Create(ctx context.Context, actorID *uuid.UUID, actorName string, in CreateMatterInput) (*models.Matter, error) {
	m := &models.Matter{
		MatterNumber: strings.TrimSpace(in.MatterNumber),
		MatterName:   strings.TrimSpace(in.MatterName),
		MatterType:   in.MatterType,
		Jurisdiction: in.Jurisdiction,
		CourtName:    in.CourtName,
		CaseNumber:   in.CaseNumber,
		Status:       in.Status,
		Description:  in.Description,
		OpenedDate:   in.OpenedDate,
		CreatedBy:    actorID,
	}
	if m.MatterType == "" {
		m.MatterType = models.MatterTypeOther
	}
	if m.Status == "" {
		m.Status = models.MatterStatusActive
	}
	if m.MatterNumber == "" || m.MatterName == "" {
		return nil, fmt.Errorf("%w: matter_number and matter_name are required", ErrValidation)
	}
	if !models.IsValidMatterType(m.MatterType) {
		return nil, fmt.Errorf("%w: unknown matter_type %q", ErrValidation, m.MatterType)
	}
	if !models.IsValidMatterStatus(m.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, m.Status)
	}

	if err := s.matters.Create(ctx, m); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("create matter: %w", err)
	}

	_, err := s.activity.Log(ctx, LogActivityInput{
		ActionType:   activity.ActionCreate,
		ResourceType: models.ResourceMatter,
		ResourceID:   m.ID.String(),
		MatterID:     m.ID.String(),
		Description:  fmt.Sprintf("Created matter %s: %s", m.MatterNumber, m.MatterName),
		Username:     actorName,
	})
	if err != nil {
		s.log.Warn("failed to log matter creation", zap.String("matter_id", m.ID.String()), zap.Error(err))
	}

	err = s.publisher.Publish(ctx, events.StreamActivity, events.Event{
		Type: events.EventMatterCreated,
		Payload: map[string]any{
			"matter_id":     m.ID.String(),
			"matter_number": m.MatterNumber,
			"matter_name":   m.MatterName,
		},
	})
	if err != nil {
		s.log.Warn("publish matter event failed", zap.String("matter_id", m.ID.String()), zap.Error(err))
	}

	return m, nil
}

func (s *MatterService) Get(ctx context.Context, rawID string) (*models.Matter, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid matter ID format: %s", ErrInvalidID, rawID)
	}
	m, err := s.matters.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: matter %s", ErrNotFound, rawID)
	}
	if err != nil {
		return nil, fmt.Errorf("get matter: %w", err)
	}
	return m, nil
}

func (s *MatterService) GetByNumber(ctx context.Context, number string) (*models.Matter, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: matter_number is required", ErrValidation)
	}
	m, err := s.matters.GetByNumber(ctx, number)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: matter with number %q", ErrNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("get matter by number: %w", err)
	}
	return m, nil
}

// Delete removes a matter and records a delete activity against it, which
// also drops the matter's cached timelines.
func (s *MatterService) Delete(ctx context.Context, actorName, rawID string) (*DeletedMatter, error) {
	m, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if err := s.matters.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: matter %s", ErrNotFound, rawID)
		}
		return nil, fmt.Errorf("delete matter: %w", err)
	}

	_, err = s.activity.Log(ctx, LogActivityInput{
		ActionType:   activity.ActionDelete,
		ResourceType: models.ResourceMatter,
		ResourceID:   m.ID.String(),
		Description:  fmt.Sprintf("Deleted matter %s: %s", m.MatterNumber, m.MatterName),
		Username:     actorName,
		Metadata: map[string]any{
			activity.MetaMatterID: m.ID.String(),
			"matter_number":       m.MatterNumber,
		},
	})
	if err != nil {
		s.log.Warn("failed to log matter deletion", zap.String("matter_id", m.ID.String()), zap.Error(err))
	}

	return &DeletedMatter{ID: m.ID.String(), MatterNumber: m.MatterNumber, MatterName: m.MatterName, Deleted: true}, nil
}

func (s *MatterService) List(ctx context.Context, f repositories.MatterFilter) ([]models.Matter, error) {
	if f.Status != nil && !models.IsValidMatterStatus(*f.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *f.Status)
	}
	matters, err := s.matters.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list matters: %w", err)
	}
	if matters == nil {
		matters = []models.Matter{}
	}
	return matters, nil
}
