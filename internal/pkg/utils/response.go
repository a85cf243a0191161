package utils

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/pkg/errors"
)

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// MessageResponse - ответ с текстовым сообщением (приветствие, постановка задачи)
type MessageResponse struct {
	Message string `json:"message"`
}

// SendJSON отправляет тело ответа как есть: GeoJSON и DTO не оборачиваются в конверт
func SendJSON(c *fiber.Ctx, status int, body interface{}) error {
	return c.Status(status).JSON(body)
}

// SendError - маппинг ошибки в конверт {"error": {...}}.
// Внутренняя причина пишется в лог и никогда не попадает в ответ.
func SendError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.ErrInternalServer
	}

	if logger != nil {
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("code", appErr.Code),
			zap.Int("status", appErr.StatusCode),
			zap.Error(err),
		}
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("Request failed", fields...)
		} else {
			logger.Debug("Request rejected", fields...)
		}
	}

	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error: appErr,
	})
}
