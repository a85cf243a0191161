package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/pkg/utils"
	"github.com/geo-engine/internal/pkg/validator"
	"github.com/geo-engine/internal/usecase"
	"github.com/geo-engine/internal/usecase/dto"
)

// ProvinceHandler - провинции и города внутри них
type ProvinceHandler struct {
	provinceUC *usecase.ProvinceUseCase
	logger     *zap.Logger
}

// NewProvinceHandler - создание нового ProvinceHandler
func NewProvinceHandler(provinceUC *usecase.ProvinceUseCase, logger *zap.Logger) *ProvinceHandler {
	return &ProvinceHandler{
		provinceUC: provinceUC,
		logger:     logger,
	}
}

// ListProvinces godoc
// @Summary Список провинций
// @Description Возвращает не более limit провинций с геометрией в GeoJSON
// @Tags Provinces
// @Produce json
// @Param limit query int false "Максимальное количество" default(10)
// @Success 200 {array} domain.Province
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/provinces [get]
func (h *ProvinceHandler) ListProvinces(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", usecase.DefaultProvincesLimit)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	req := dto.ProvincesRequest{Limit: limit}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	provinces, err := h.provinceUC.ListProvinces(c.Context(), req.Limit)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, provinces)
}

// CitiesInProvince godoc
// @Summary Города провинции
// @Description Возвращает города, пересекающие провинцию. Неизвестная провинция дает пустую коллекцию.
// @Tags Provinces
// @Produce json
// @Param province_name path string true "Название провинции"
// @Success 200 {object} domain.FeatureCollection
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/provinces/{province_name}/cities [get]
func (h *ProvinceHandler) CitiesInProvince(c *fiber.Ctx) error {
	req := dto.CitiesInProvinceRequest{ProvinceName: c.Params("province_name")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	fc, err := h.provinceUC.CitiesInProvince(c.Context(), req.ProvinceName)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, fc)
}
