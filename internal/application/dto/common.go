package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// CreatedResponse ID generado por una alta.
type CreatedResponse struct {
	ID int64 `json:"id"`
}
