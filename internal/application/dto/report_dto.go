package dto

// ReportRequest rango opcional del reporte (YYYY-MM-DD). Vacío = sin límite.
type ReportRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// PeriodDTO rango efectivo usado por la consulta.
type PeriodDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TotalSpendResponse gasto total del período.
type TotalSpendResponse struct {
	Period PeriodDTO `json:"period"`
	Total  string    `json:"total"`
}

// CategorySpendDTO fila del reporte por categoría.
type CategorySpendDTO struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        string `json:"total"`
	Count        int64  `json:"count"`
}

// CategoryReportResponse una fila por categoría, por nombre.
type CategoryReportResponse struct {
	Period PeriodDTO          `json:"period"`
	Rows   []CategorySpendDTO `json:"rows"`
}

// SummaryResponse total y desglose en una sola respuesta.
type SummaryResponse struct {
	Period PeriodDTO          `json:"period"`
	Total  string             `json:"total"`
	Rows   []CategorySpendDTO `json:"rows"`
}
