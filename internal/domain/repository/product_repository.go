package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	// List devuelve todos los productos; si nameFilter no está vacío,
	// filtra por subcadena del nombre sin distinguir mayúsculas.
	List(nameFilter string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity actualiza solo la cantidad (usada por el coordinador de movimientos).
	UpdateQuantity(id string, quantity int64) error
	// Delete elimina el producto y, en cascada, sus movimientos.
	Delete(id string) error
}
