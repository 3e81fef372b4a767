package reporting

import (
	"strings"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
)

// ParsePeriod convierte el rango opcional del reporte. Un extremo vacío toma la fecha
// centinela (MinDate / MaxDate) para que la consulta siempre reciba dos fechas;
// un extremo mal formado es un error de validación.
func ParsePeriod(from, to string) (entity.DateRange, error) {
	period := entity.OpenRange()
	if strings.TrimSpace(from) != "" {
		d, err := entity.ParseDate("from", from)
		if err != nil {
			return entity.DateRange{}, err
		}
		period.From = d
	}
	if strings.TrimSpace(to) != "" {
		d, err := entity.ParseDate("to", to)
		if err != nil {
			return entity.DateRange{}, err
		}
		period.To = d
	}
	return period, nil
}
