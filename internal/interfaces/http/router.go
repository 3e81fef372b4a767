package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/application/reporting"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReceiptUC  *purchases.ReceiptUseCase
	LineItemUC *purchases.LineItemUseCase
	CategoryUC *purchases.CategoryUseCase
	ReceiptPDF *purchases.PDFUseCase // opcional
	ReportUC   *reporting.ReportUseCase
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	registerDecimalParser()
	api := app.Group("/api")

	// Receipts
	receipts := api.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.ReceiptPDF, log)
	itemHandler := NewLineItemHandler(deps.LineItemUC, log)
	receipts.Get("/", receiptHandler.List)
	receipts.Post("/", receiptHandler.Create)
	receipts.Post("/bulk", receiptHandler.Bulk)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Put("/:id", receiptHandler.Update)
	receipts.Delete("/:id", receiptHandler.Delete)
	receipts.Get("/:id/pdf", receiptHandler.PDF)
	receipts.Get("/:id/items", itemHandler.ListByReceipt)
	receipts.Post("/:id/items", itemHandler.Create)

	// Line items
	items := api.Group("/items")
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports.Get("/total", reportHandler.Total)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/categories/export", reportHandler.Export)
	reports.Get("/summary", reportHandler.Summary)
}
