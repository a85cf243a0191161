package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/pkg/utils"
	"github.com/geo-engine/internal/usecase"
	"github.com/geo-engine/internal/usecase/dto"
)

// TaskHandler - опрос состояния фоновых задач
type TaskHandler struct {
	taskUC *usecase.TaskUseCase
	logger *zap.Logger
}

// NewTaskHandler - создание нового TaskHandler
func NewTaskHandler(taskUC *usecase.TaskUseCase, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskUC: taskUC,
		logger: logger,
	}
}

// GetTask godoc
// @Summary Состояние задачи
// @Description Не ждет завершения задачи. Неизвестный task_id дает 404, а не PENDING.
// @Tags Tasks
// @Produce json
// @Param task_id path string true "ID задачи"
// @Success 200 {object} dto.TaskStatusResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/tasks/{task_id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.taskUC.Poll(c.Context(), c.Params("task_id"))
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, dto.NewTaskStatusResponse(task))
}
