package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryRepository puerto del saldo materializado por (producto, bodega).
// Get/GetForUpdate devuelven nil cuando no hay fila (saldo cero).
type InventoryRepository interface {
	Get(productID, warehouseID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); serializa transferencias
	// concurrentes sobre el mismo (producto, bodega origen).
	GetForUpdate(productID, warehouseID string) (*entity.Inventory, error)
	// Upsert persiste el saldo; si Quantity es cero elimina la fila (política uniforme:
	// no se conservan saldos en cero).
	Upsert(inventory *entity.Inventory) error
	SumByProduct(productID string) (int64, error)
	ListByProduct(productID string) ([]*entity.Inventory, error)
}
