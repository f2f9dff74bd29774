package handlers

import (
	"context"

	"github.com/casefeed/backend/internal/activity"
	"github.com/casefeed/backend/internal/http/dto"
	"github.com/casefeed/backend/internal/middleware"
	"github.com/casefeed/backend/internal/repositories"
	"github.com/casefeed/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ActivityService is implemented by *services.ActivityService.
type ActivityService interface {
	Log(ctx context.Context, in services.LogActivityInput) (*activity.Activity, error)
	ListForMatter(ctx context.Context, matterID string, limit, offset int) ([]activity.Activity, error)
	TimelineForMatter(ctx context.Context, matterID string, q services.TimelineQuery) (*services.Timeline, error)
}

type ActivityHandler struct {
	activityService ActivityService
	log             *zap.Logger
}

func NewActivityHandler(activityService ActivityService, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, log: log}
}

func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request", RequestID: middleware.GetRequestID(c)})
	}

	username := req.Username
	if username == "" {
		username = middleware.GetUsername(c)
	}

	a, err := h.activityService.Log(c.UserContext(), services.LogActivityInput{
		ActionType:   req.ActionType,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		MatterID:     req.MatterID,
		Description:  req.Description,
		Username:     username,
		Metadata:     req.Metadata,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *ActivityHandler) ListMatterActivities(c *fiber.Ctx) error {
	limit, offset := repositories.ClampPage(queryInt(c, "limit", 0), queryInt(c, "offset", 0))

	items, err := h.activityService.ListForMatter(c.UserContext(), c.Params("matterId"), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if items == nil {
		items = []activity.Activity{}
	}

	return c.JSON(dto.PagedResponse{
		OK:   true,
		Data: items,
		Page: dto.PageMeta{Limit: limit, Offset: offset, Count: len(items)},
	})
}

// GetMatterTimeline serves the grouped timeline. The generation doubles as
// an ETag so polling clients get 304 when nothing changed.
func (h *ActivityHandler) GetMatterTimeline(c *fiber.Ctx) error {
	tl, err := h.activityService.TimelineForMatter(c.UserContext(), c.Params("matterId"), services.TimelineQuery{
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
		Zone:   c.Query("tz"),
		Search: c.Query("q"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	etag := `W/"` + tl.Generation + `"`
	c.Set(fiber.HeaderETag, etag)
	c.Set(fiber.HeaderCacheControl, "private, no-cache")
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: tl})
}
