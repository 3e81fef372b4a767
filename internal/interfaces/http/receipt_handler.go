package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

const receiptsPath = "/api/receipts"

// ReceiptHandler maneja las peticiones HTTP para cheques.
type ReceiptHandler struct {
	uc  *purchases.ReceiptUseCase
	pdf *purchases.PDFUseCase
	log *logger.Logger
}

// NewReceiptHandler construye el handler. pdf puede ser nil.
func NewReceiptHandler(uc *purchases.ReceiptUseCase, pdf *purchases.PDFUseCase, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, pdf: pdf, log: log}
}

// List godoc
// @Summary      Listar cheques
// @Tags         receipts
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {object}  dto.ReceiptListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	var in dto.ReceiptFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cheque
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiptRequest  true  "Fecha y tienda"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// Bulk godoc
// @Summary      Crear cheque con todas sus líneas
// @Description  Una sola unidad de trabajo: o se crean el cheque y todas las líneas, o nada.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkReceiptRequest  true  "Cheque y líneas"
// @Success      201   {object}  dto.BulkReceiptResponse
// @Failure      400   {object}  dto.BulkReceiptResponse
// @Failure      500   {object}  dto.BulkReceiptResponse
// @Router       /api/receipts/bulk [post]
func (h *ReceiptHandler) Bulk(c *fiber.Ctx) error {
	body := c.Body()
	if err := validateBulkPayload(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.BulkReceiptResponse{Error: err.Error()})
	}
	var in dto.BulkReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.BulkReceiptResponse{Error: "cuerpo inválido"})
	}
	id, err := h.uc.BulkCreate(c.UserContext(), in)
	if err != nil {
		status, resp := errorResponse(err)
		if status >= fiber.StatusInternalServerError {
			h.log.Error().Err(err).Str("request_id", RequestID(c)).Msg("alta masiva fallida")
		}
		msg := resp.Message
		if resp.Field != "" {
			msg = fmt.Sprintf("%s: %s", resp.Field, resp.Message)
		}
		return c.Status(status).JSON(dto.BulkReceiptResponse{Error: msg})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BulkReceiptResponse{ID: &id})
}

// GetByID godoc
// @Summary      Obtener cheque con sus líneas y total
// @Tags         receipts
// @Produce      json
// @Param        id   path  int  true  "ID del cheque"
// @Success      200  {object}  dto.ReceiptDetailResponse
// @Success      303  "El cheque no existe; redirige al listado"
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Reemplazar fecha y tienda
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del cheque"
// @Param        body  body  dto.ReceiptRequest  true  "Fecha y tienda"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Update(c.UserContext(), id, in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar cheque y sus líneas
// @Tags         receipts
// @Param        id   path  int  true  "ID del cheque"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar el cheque en PDF
// @Tags         receipts
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del cheque"
// @Success      200  {file}  binary
// @Success      303  "El cheque no existe; redirige al listado"
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return writeError(c, h.log, fmt.Errorf("pdf: %w", domain.ErrNotFound))
	}
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	data, filename, err := h.pdf.DownloadReceiptPDF(c.UserContext(), id)
	if err != nil {
		return readError(c, h.log, err, receiptsPath)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
