package entity

import (
	"strings"

	"github.com/jhoicas/apskaita-api/internal/domain"
)

// Category representa un tipo de gasto. Las líneas la referencian, nunca la poseen.
type Category struct {
	ID   int64
	Name string
}

// NewCategory valida el nombre (texto libre, sin unicidad).
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	return &Category{Name: name}, nil
}
