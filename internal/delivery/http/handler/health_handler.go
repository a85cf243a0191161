package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geo-engine/internal/pkg/utils"
	"github.com/geo-engine/internal/usecase"
)

const welcomeMessage = "Welcome to Geo-Engine API!"

type HealthHandler struct {
	healthUC *usecase.HealthUseCase
}

func NewHealthHandler(healthUC *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{healthUC: healthUC}
}

// Root godoc
// @Summary Приветствие
// @Tags System
// @Produce json
// @Success 200 {object} utils.MessageResponse
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, utils.MessageResponse{Message: welcomeMessage})
}

// Health godoc
// @Summary Состояние сервиса
// @Description 503, если пул соединений хранилища недоступен
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp, ready := h.healthUC.Check(c.Context())
	if !ready {
		return utils.SendJSON(c, fiber.StatusServiceUnavailable, resp)
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}
