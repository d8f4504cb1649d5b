package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement representa una entrada o salida de stock de un producto.
// Es inmutable una vez creado: el libro de movimientos es solo-append y
// únicamente se borra en cascada al eliminar el producto.
type Movement struct {
	ID        string
	UserID    string
	ProductID string
	Type      string // IN u OUT
	Quantity  int64  // estrictamente positiva
	CreatedAt time.Time
}
