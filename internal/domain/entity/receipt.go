package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/apskaita-api/internal/domain"
)

// Receipt representa un cheque de compra: fecha y tienda. Es dueño de sus LineItems.
type Receipt struct {
	ID    int64
	Date  time.Time // solo fecha, medianoche UTC
	Store string
}

// ReceiptFilter restringe el listado de cheques por fecha (ambos extremos inclusivos).
type ReceiptFilter struct {
	From *time.Time
	To   *time.Time
}

// NewReceipt valida los campos del formulario y construye el cheque (sin ID).
func NewReceipt(date, store string) (*Receipt, error) {
	d, err := ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	store = strings.TrimSpace(store)
	if store == "" {
		return nil, domain.NewValidationError("store", "es requerido")
	}
	return &Receipt{Date: d, Store: store}, nil
}
