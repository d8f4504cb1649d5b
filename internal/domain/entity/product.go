package entity

import "time"

// Product representa un producto del almacén con su cantidad actual en existencia.
// Quantity es una proyección de los movimientos (el libro de movimientos es la fuente
// de verdad); solo el coordinador de movimientos la modifica después de la creación.
type Product struct {
	ID            string
	Name          string
	Description   string
	Quantity      int64 // nunca negativa
	Location      string
	ImagePath     string
	DatasheetPath string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
