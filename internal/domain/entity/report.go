package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Límites usados cuando el rango del reporte queda abierto; la consulta siempre recibe dos fechas.
var (
	MinDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// DateRange rango de fechas inclusivo en ambos extremos.
type DateRange struct {
	From time.Time
	To   time.Time
}

// OpenRange devuelve el rango completo [MinDate, MaxDate].
func OpenRange() DateRange {
	return DateRange{From: MinDate, To: MaxDate}
}

// Contains indica si d cae dentro del rango.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// CategorySpend fila del reporte por categoría. Total y Count son cero si no hubo compras.
type CategorySpend struct {
	CategoryID   int64
	CategoryName string
	Total        decimal.Decimal
	Count        int64
}
