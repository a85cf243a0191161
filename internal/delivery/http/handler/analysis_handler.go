package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/pkg/utils"
	"github.com/geo-engine/internal/pkg/validator"
	"github.com/geo-engine/internal/usecase"
	"github.com/geo-engine/internal/usecase/dto"
)

const slowTaskAccepted = "Analysis task accepted"

// AnalysisHandler - пространственный анализ и медленные задачи
type AnalysisHandler struct {
	analysisUC *usecase.AnalysisUseCase
	taskUC     *usecase.TaskUseCase
	logger     *zap.Logger
}

// NewAnalysisHandler - создание нового AnalysisHandler
func NewAnalysisHandler(analysisUC *usecase.AnalysisUseCase, taskUC *usecase.TaskUseCase, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC: analysisUC,
		taskUC:     taskUC,
		logger:     logger,
	}
}

// Buffer godoc
// @Summary Буфер вокруг точки
// @Description Строит буфер radius_km вокруг точки в проекции EPSG:3857 и возвращает полигон в EPSG:4326
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.BufferRequest true "Точка и радиус"
// @Success 200 {object} domain.Feature
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/analysis/buffer [post]
func (h *AnalysisHandler) Buffer(c *fiber.Ctx) error {
	var req dto.BufferRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	feature, err := h.analysisUC.Buffer(c.Context(), req.GeoJSONFeature, *req.RadiusKm)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, feature)
}

// IntersectingCities godoc
// @Summary Города, пересекающие полигон
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.OverlayRequest true "Polygon или MultiPolygon"
// @Success 200 {object} domain.FeatureCollection
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/analysis/intersecting-cities [post]
func (h *AnalysisHandler) IntersectingCities(c *fiber.Ctx) error {
	var req dto.OverlayRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	fc, err := h.analysisUC.IntersectingCities(c.Context(), req.PolygonFeature)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, fc)
}

// SlowTask godoc
// @Summary Медленный анализ в фоне
// @Description Ставит задачу в очередь и сразу возвращает task_id. Результат доступен через /api/tasks/{task_id}.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body dto.SlowTaskRequest true "Входные данные"
// @Success 202 {object} dto.SlowTaskResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/analysis/slow-task [post]
func (h *AnalysisHandler) SlowTask(c *fiber.Ctx) error {
	var req dto.SlowTaskRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	taskID, err := h.taskUC.Submit(c.Context(), *req.InputData)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusAccepted, dto.SlowTaskResponse{
		Message: slowTaskAccepted,
		TaskID:  taskID,
	})
}
