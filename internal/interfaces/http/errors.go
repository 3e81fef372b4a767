package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

// Mensajes genéricos para fallos de infraestructura; el detalle solo va al log.
const (
	msgConnection  = "no se pudo conectar con la base de datos, intente más tarde"
	msgTransaction = "la operación no se completó; no se guardó ningún cambio"
	msgInternal    = "error interno"
)

// writeError traduce un error de caso de uso a la respuesta HTTP.
//   - ValidationError          → 400 VALIDATION con el campo.
//   - ErrNotFound              → 404 NOT_FOUND.
//   - ConnectionError          → 500 CONNECTION.
//   - TransactionError / otro  → 500 con aviso genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", RequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("petición fallida")
	}
	return c.Status(status).JSON(body)
}

// readError como writeError, pero en lecturas un recurso inexistente redirige a su listado.
func readError(c *fiber.Ctx, log *logger.Logger, err error, listPath string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Redirect(listPath, fiber.StatusSeeOther)
	}
	return writeError(c, log, err)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Message, Field: vErr.Field}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrConnection):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "CONNECTION", Message: msgConnection}
	case errors.Is(err, domain.ErrTransaction):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "TRANSACTION", Message: msgTransaction}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: msgInternal}
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "debe ser un entero positivo")
	}
	return int64(id), nil
}
