package handler

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/pkg/errors"
)

// parseBody разбирает JSON-тело. Некорректная геометрия отличается от просто битого JSON.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	err := c.BodyParser(dst)
	if err == nil {
		return nil
	}

	if stderrors.Is(err, domain.ErrInvalidGeometry) {
		return errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}).WithCause(err)
	}
	return errors.ErrInvalidRequest.WithCause(err)
}

// queryFloat - обязательный числовой query-параметр
func queryFloat(c *fiber.Ctx, name string) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, errors.ErrValidation.WithDetails(map[string]interface{}{name: "required"})
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ErrValidation.WithDetails(map[string]interface{}{name: "numeric"}).WithCause(err)
	}
	return v, nil
}

// queryInt - необязательный целочисленный query-параметр
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ErrValidation.WithDetails(map[string]interface{}{name: "integer"}).WithCause(err)
	}
	return v, nil
}
