package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetByID devuelve nil (sin error) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List filtra por bodega principal si warehouseID no es vacío.
	List(warehouseID string, limit, offset int) ([]*entity.Product, error)
	Count(warehouseID string) (int, error)
	ListByIDs(ids []string) ([]*entity.Product, error)
	// ListAll devuelve el catálogo completo (lo usa el pase de reconciliación del cache).
	ListAll() ([]*entity.Product, error)
}
