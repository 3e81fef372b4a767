package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/domain"
)

// LineItem representa una línea de un cheque. ReceiptID no cambia después de crearse.
type LineItem struct {
	ID           int64
	ReceiptID    int64
	Description  string
	Quantity     decimal.Decimal
	Price        decimal.Decimal // precio unitario
	CategoryID   int64
	CategoryName string // solo lectura; vacío si la categoría ya no existe
}

// LineItemFilter filtra el listado de líneas. Los campos en cero no filtran.
type LineItemFilter struct {
	ReceiptID  int64
	CategoryID int64
}

// LineItemFields son los campos reemplazables de una línea (update sin patch parcial).
type LineItemFields struct {
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	CategoryID  int64
}

// Total devuelve cantidad × precio con aritmética decimal exacta.
func (li *LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.Price)
}

// Apply reemplaza los campos editables; el cheque dueño se conserva.
func (li *LineItem) Apply(f LineItemFields) {
	li.Description = f.Description
	li.Quantity = f.Quantity
	li.Price = f.Price
	li.CategoryID = f.CategoryID
}

// NewLineItemFields valida los campos de una línea antes de cualquier escritura.
func NewLineItemFields(description string, quantity, price decimal.Decimal, categoryID int64) (LineItemFields, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return LineItemFields{}, domain.NewValidationError("description", "es requerido")
	}
	q, err := positiveAmount("quantity", quantity)
	if err != nil {
		return LineItemFields{}, err
	}
	p, err := positiveAmount("price", price)
	if err != nil {
		return LineItemFields{}, err
	}
	if categoryID <= 0 {
		return LineItemFields{}, domain.NewValidationError("category_id", "es requerido")
	}
	return LineItemFields{Description: description, Quantity: q, Price: p, CategoryID: categoryID}, nil
}

// NewLineItem valida y construye una línea nueva para el cheque receiptID.
func NewLineItem(receiptID int64, description string, quantity, price decimal.Decimal, categoryID int64) (*LineItem, error) {
	if receiptID <= 0 {
		return nil, domain.NewValidationError("receipt_id", "es requerido")
	}
	f, err := NewLineItemFields(description, quantity, price, categoryID)
	if err != nil {
		return nil, err
	}
	li := &LineItem{ReceiptID: receiptID}
	li.Apply(f)
	return li, nil
}
