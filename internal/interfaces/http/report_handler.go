package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/application/reporting"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler expone los reportes de gasto.
type ReportHandler struct {
	uc  *reporting.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

func (h *ReportHandler) period(c *fiber.Ctx) (dto.ReportRequest, error) {
	var in dto.ReportRequest
	err := c.QueryParser(&in)
	return in, err
}

// Total godoc
// @Summary      Gasto total del período
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {object}  dto.TotalSpendResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/total [get]
func (h *ReportHandler) Total(c *fiber.Ctx) error {
	in, err := h.period(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.TotalSpend(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Gasto por categoría
// @Description  Una fila por categoría existente, con ceros si no hubo compras.
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {object}  dto.CategoryReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	in, err := h.period(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SpendByCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Total y desglose por categoría
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {object}  dto.SummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	in, err := h.period(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Summary(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar el reporte por categoría en XLSX
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/categories/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	in, err := h.period(c)
	if err != nil {
		return invalidBody(c)
	}
	data, filename, err := h.uc.ExportXLSX(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
