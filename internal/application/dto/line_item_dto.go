package dto

import "github.com/shopspring/decimal"

// LineItemRequest entrada para crear o reemplazar una línea.
// Cantidad y precio aceptan número o texto JSON y se leen sin pasar por float.
type LineItemRequest struct {
	Description string          `json:"description" form:"description"`
	Quantity    decimal.Decimal `json:"quantity" form:"quantity"`
	Price       decimal.Decimal `json:"price" form:"price"`
	CategoryID  int64           `json:"category_id" form:"category_id"`
}

// LineItemResponse salida de una línea. Los montos van como texto decimal.
type LineItemResponse struct {
	ID           int64  `json:"id"`
	ReceiptID    int64  `json:"receipt_id"`
	Description  string `json:"description"`
	Quantity     string `json:"quantity"`
	Price        string `json:"price"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        string `json:"total"`
}

// LineItemListResponse líneas de un cheque.
type LineItemListResponse struct {
	Items []LineItemResponse `json:"items"`
}

// DeletedLineItemResponse cheque dueño de la línea borrada, para volver a su detalle.
type DeletedLineItemResponse struct {
	ReceiptID int64 `json:"receipt_id"`
}
