package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate acepta YYYY-MM-DD o RFC 3339 y devuelve la fecha calendario en UTC.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.NewValidationError(field, "es requerido")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, domain.NewValidationError(field, "fecha inválida, se espera YYYY-MM-DD")
		}
	}
	return DateOnly(t), nil
}

// DateOnly trunca t a la medianoche UTC de su fecha calendario.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formatea una fecha como YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func positiveAmount(field string, v decimal.Decimal) (decimal.Decimal, error) {
	if !v.IsPositive() {
		return decimal.Zero, domain.NewValidationError(field, "debe ser mayor que cero")
	}
	return v, nil
}
