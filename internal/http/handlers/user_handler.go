package handlers

import (
	"github.com/casefeed/backend/internal/http/dto"
	"github.com/casefeed/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GetMe echoes the identity carried by the session token; accounts live in
// the external auth service.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.MeResponse{
		UserID:   middleware.GetUserID(c).String(),
		Username: middleware.GetUsername(c),
	}})
}
