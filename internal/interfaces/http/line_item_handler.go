package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

// LineItemHandler maneja las líneas de cheque.
type LineItemHandler struct {
	uc  *purchases.LineItemUseCase
	log *logger.Logger
}

// NewLineItemHandler construye el handler.
func NewLineItemHandler(uc *purchases.LineItemUseCase, log *logger.Logger) *LineItemHandler {
	return &LineItemHandler{uc: uc, log: log}
}

// ListByReceipt godoc
// @Summary      Listar líneas de un cheque
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID del cheque"
// @Success      200  {object}  dto.LineItemListResponse
// @Success      303  "El cheque no existe; redirige al listado"
// @Router       /api/receipts/{id}/items [get]
func (h *LineItemHandler) ListByReceipt(c *fiber.Ctx) error {
	receiptID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.ListByReceipt(c.UserContext(), receiptID)
	if err != nil {
		return readError(c, h.log, err, receiptsPath)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar línea a un cheque
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del cheque"
// @Param        body  body  dto.LineItemRequest  true  "Línea"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/items [post]
func (h *LineItemHandler) Create(c *fiber.Ctx) error {
	receiptID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Create(c.UserContext(), receiptID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// GetByID godoc
// @Summary      Obtener línea
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID de la línea"
// @Success      200  {object}  dto.LineItemResponse
// @Success      303  "La línea no existe; redirige al listado de cheques"
// @Router       /api/items/{id} [get]
func (h *LineItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return readError(c, h.log, err, receiptsPath)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar línea (el cheque dueño no cambia)
// @Tags         items
// @Accept       json
// @Param        id    path  int                  true  "ID de la línea"
// @Param        body  body  dto.LineItemRequest  true  "Línea"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *LineItemHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Update(c.UserContext(), id, in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar línea
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID de la línea"
// @Success      200  {object}  dto.DeletedLineItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *LineItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	receiptID, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DeletedLineItemResponse{ReceiptID: receiptID})
}
