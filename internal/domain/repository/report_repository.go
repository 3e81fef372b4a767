package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
)

// ReportRepository consultas de solo lectura para los reportes de gasto.
type ReportRepository interface {
	// TotalSpend suma cantidad × precio de las líneas cuyo cheque cae en el rango.
	TotalSpend(ctx context.Context, period entity.DateRange) (decimal.Decimal, error)
	// SpendByCategory devuelve una fila por categoría existente, ordenada por nombre.
	SpendByCategory(ctx context.Context, period entity.DateRange) ([]entity.CategorySpend, error)
}
