package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/casefeed/backend/internal/http/dto"
	"github.com/casefeed/backend/internal/middleware"
	"github.com/casefeed/backend/internal/models"
	"github.com/casefeed/backend/internal/repositories"
	"github.com/casefeed/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatterService is implemented by *services.MatterService.
type MatterService interface {
	Create(ctx context.Context, actorID *uuid.UUID, actorName string, in services.CreateMatterInput) (*models.Matter, error)
	Get(ctx context.Context, rawID string) (*models.Matter, error)
	GetByNumber(ctx context.Context, number string) (*models.Matter, error)
	Delete(ctx context.Context, actorName, rawID string) (*services.DeletedMatter, error)
	List(ctx context.Context, f repositories.MatterFilter) ([]models.Matter, error)
}

type MatterHandler struct {
	matterService MatterService
	log           *zap.Logger
}

func NewMatterHandler(matterService MatterService, log *zap.Logger) *MatterHandler {
	return &MatterHandler{matterService: matterService, log: log}
}

func (h *MatterHandler) CreateMatter(c *fiber.Ctx) error {
	var req dto.CreateMatterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request", RequestID: middleware.GetRequestID(c)})
	}

	in := services.CreateMatterInput{
		MatterNumber: req.MatterNumber,
		MatterName:   req.MatterName,
		MatterType:   req.MatterType,
		Jurisdiction: req.Jurisdiction,
		CourtName:    req.CourtName,
		CaseNumber:   req.CaseNumber,
		Status:       req.Status,
		Description:  req.Description,
	}
	if req.OpenedDate != nil && *req.OpenedDate != "" {
		d, err := time.Parse(time.DateOnly, *req.OpenedDate)
		if err != nil {
			return respondError(c, h.log, fmt.Errorf("%w: opened_date must be YYYY-MM-DD", services.ErrValidation))
		}
		in.OpenedDate = &d
	}

	var actorID *uuid.UUID
	if id := middleware.GetUserID(c); id != uuid.Nil {
		actorID = &id
	}

	m, err := h.matterService.Create(c.UserContext(), actorID, middleware.GetUsername(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *MatterHandler) GetMatter(c *fiber.Ctx) error {
	m, err := h.matterService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *MatterHandler) GetMatterByNumber(c *fiber.Ctx) error {
	m, err := h.matterService.GetByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *MatterHandler) DeleteMatter(c *fiber.Ctx) error {
	out, err := h.matterService.Delete(c.UserContext(), middleware.GetUsername(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: out})
}

func (h *MatterHandler) ListMatters(c *fiber.Ctx) error {
	limit, offset := repositories.ClampMatterPage(queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	filter := repositories.MatterFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	matters, err := h.matterService.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.PagedResponse{
		OK:   true,
		Data: matters,
		Page: dto.PageMeta{Limit: filter.Limit, Offset: filter.Offset, Count: len(matters)},
	})
}
