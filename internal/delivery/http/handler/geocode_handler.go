package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/pkg/utils"
	"github.com/geo-engine/internal/pkg/validator"
	"github.com/geo-engine/internal/usecase"
	"github.com/geo-engine/internal/usecase/dto"
)

// GeocodeHandler - прямое и обратное геокодирование
type GeocodeHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

// NewGeocodeHandler - создание нового GeocodeHandler
func NewGeocodeHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// Geocode godoc
// @Summary Геокодирование адреса
// @Description Возвращает координаты и административную привязку адреса через AMap
// @Tags Geocoding
// @Produce json
// @Param address query string true "Адрес"
// @Success 200 {object} domain.Location
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/geocode [get]
func (h *GeocodeHandler) Geocode(c *fiber.Ctx) error {
	req := dto.GeocodeRequest{Address: c.Query("address")}

	loc, err := h.geocodeUC.Geocode(c.Context(), req.Address)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, loc)
}

// ReverseGeocode godoc
// @Summary Обратное геокодирование
// @Description Возвращает адрес ближайшего объекта по координатам
// @Tags Geocoding
// @Produce json
// @Param lon query number true "Долгота"
// @Param lat query number true "Широта"
// @Success 200 {object} domain.Address
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/reverse-geocode [get]
func (h *GeocodeHandler) ReverseGeocode(c *fiber.Ctx) error {
	var req dto.ReverseGeocodeRequest
	var err error

	if req.Lon, err = queryFloat(c, "lon"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	addr, err := h.geocodeUC.ReverseGeocode(c.Context(), req.Lon, req.Lat)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, addr)
}
