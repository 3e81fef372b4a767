package dto

// ReceiptRequest entrada para crear o reemplazar un cheque.
type ReceiptRequest struct {
	Date  string `json:"date" form:"date"`   // YYYY-MM-DD
	Store string `json:"store" form:"store"`
}

// ReceiptResponse salida de un cheque.
type ReceiptResponse struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Store string `json:"store"`
}

// ReceiptDetailResponse cheque con sus líneas (ordenadas por descripción) y el total.
type ReceiptDetailResponse struct {
	ReceiptResponse
	Items []LineItemResponse `json:"items"`
	Total string             `json:"total"`
}

// ReceiptListResponse lista de cheques por fecha y tienda.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
}

// ReceiptFilterRequest filtros opcionales del listado.
type ReceiptFilterRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// BulkReceiptRequest cheque completo enviado como JSON. Date vacío = hoy.
type BulkReceiptRequest struct {
	Date  string            `json:"date"`
	Store string            `json:"store"`
	Items []LineItemRequest `json:"items"`
}

// BulkReceiptResponse resultado del alta masiva: id o {id: null, error}.
type BulkReceiptResponse struct {
	ID    *int64 `json:"id"`
	Error string `json:"error,omitempty"`
}
