package purchases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// TxRunner es la unidad de trabajo: Run ejecuta fn dentro de una transacción con repositorios
// atados a ella y garantiza Commit o Rollback; View ejecuta lecturas sobre una sola conexión.
// Ninguno reintenta: la política de reintentos pertenece al llamador.
// fn recibe el contexto de la unidad (con su timeout) y debe usarlo en cada sentencia.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		receipts repository.ReceiptRepository,
		items repository.LineItemRepository,
		categories repository.CategoryRepository,
	) error) error
	View(ctx context.Context, fn func(
		ctx context.Context,
		receipts repository.ReceiptRepository,
		items repository.LineItemRepository,
		categories repository.CategoryRepository,
	) error) error
}

// ReceiptPDFGenerator genera la versión imprimible de un cheque con sus líneas.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *entity.Receipt, items []*entity.LineItem, total decimal.Decimal) ([]byte, error)
}
