package entity

import "time"

// Category representa una categoría de productos (jerárquica opcional).
// Un parent como máximo; la aciclicidad se valida en cada escritura de
// ParentID, no solo contra la auto-referencia directa.
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string
	Code      string // código único
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
