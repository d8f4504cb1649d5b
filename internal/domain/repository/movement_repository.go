package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementRepository puerto de persistencia para el libro de movimientos.
// Solo-append: no existen operaciones de actualización ni borrado directo.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListAll devuelve todos los movimientos en orden de inserción.
	ListAll() ([]*entity.Movement, error)
	// SumByType suma las cantidades de los movimientos del tipo dado; si productID
	// no es nil, restringe al producto. Devuelve 0 sin filas coincidentes.
	SumByType(movType string, productID *string) (int64, error)
}
