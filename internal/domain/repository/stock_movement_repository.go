package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockMovementRepository puerto del log append-only de movimientos.
// No hay Update ni Delete: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(productID string) (int, error)
	// SumByProduct recalcula el stock desde el log: entradas menos salidas.
	// warehouseID vacío = todas las bodegas. Es el fallback autoritativo del cache.
	SumByProduct(productID, warehouseID string) (int64, error)
}
