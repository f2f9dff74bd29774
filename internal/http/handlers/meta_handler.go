package handlers

import (
	"github.com/casefeed/backend/internal/activity"
	"github.com/casefeed/backend/internal/http/dto"
	"github.com/casefeed/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var matterTypeOptions = []MetaOption{
	{ID: models.MatterTypeState, Label: "State"},
	{ID: models.MatterTypeFederal, Label: "Federal"},
	{ID: models.MatterTypeBankruptcy, Label: "Bankruptcy"},
	{ID: models.MatterTypeBusiness, Label: "Business"},
	{ID: models.MatterTypeOther, Label: "Other"},
}

var matterStatusOptions = []MetaOption{
	{ID: models.MatterStatusActive, Label: "Active"},
	{ID: models.MatterStatusOnHold, Label: "On hold"},
	{ID: models.MatterStatusClosed, Label: "Closed"},
	{ID: models.MatterStatusArchived, Label: "Archived"},
}

var actionTypeOptions = []MetaOption{
	{ID: activity.ActionImport, Label: "Import"},
	{ID: activity.ActionUpload, Label: "Upload"},
	{ID: activity.ActionCreate, Label: "Create"},
	{ID: activity.ActionUpdate, Label: "Update"},
	{ID: activity.ActionDelete, Label: "Delete"},
	{ID: activity.ActionProcess, Label: "Process"},
	{ID: activity.ActionReview, Label: "Review"},
}

func (h *MetaHandler) GetMatterTypes(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: matterTypeOptions})
}

func (h *MetaHandler) GetMatterStatuses(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: matterStatusOptions})
}

func (h *MetaHandler) GetActionTypes(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: actionTypeOptions})
}
