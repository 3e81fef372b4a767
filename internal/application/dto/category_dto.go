package dto

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"name" form:"name"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponse categorías ordenadas por nombre.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
