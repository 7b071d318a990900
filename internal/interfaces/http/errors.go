package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/domain"
)

// errorMapping orden importa: los sentinelas específicos van antes que los genéricos.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrWorkloadExceeded, fiber.StatusBadRequest, "WORKLOAD_EXCEEDED"},
	{domain.ErrContractNotActive, fiber.StatusBadRequest, "CONTRACT_NOT_ACTIVE"},
	{domain.ErrPositionCycle, fiber.StatusBadRequest, "POSITION_CYCLE"},
	{domain.ErrSurveyClosed, fiber.StatusBadRequest, "SURVEY_CLOSED"},
	{domain.ErrPositionOccupied, fiber.StatusConflict, "POSITION_OCCUPIED"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError traduce errores de dominio a status + dto.ErrorResponse.
// Los errores no mapeados se registran y se responden como 500 sin detalle interno.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// ErrorHandler manejador global de Fiber: errores de Fiber conservan su status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
