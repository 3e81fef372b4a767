package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
)

// Exporter genera la representación descargable del reporte por categoría.
type Exporter interface {
	CategoryReport(period entity.DateRange, rows []entity.CategorySpend, total decimal.Decimal) ([]byte, error)
}
