package entity

import "time"

// DefaultMinStockLevel umbral de stock mínimo cuando el caller no especifica uno.
const DefaultMinStockLevel = 10

// Product representa un producto del inventario.
// HomeWarehouseID es una denormalización informativa (la bodega "principal" del producto);
// el saldo real por bodega vive en Inventory y siempre manda sobre este puntero.
type Product struct {
	ID              string
	Name            string
	SKU             string // código único; vacío = sin SKU
	MinStockLevel   int64  // umbral para alertas de stock bajo
	HomeWarehouseID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
