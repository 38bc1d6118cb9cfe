package entity

import "time"

// Inventory representa el saldo derivado de un producto en una bodega.
// Invariante: la suma de saldos de un producto entre todas las bodegas es igual a
// entradas menos salidas en el log de movimientos. Un saldo que llega a cero se
// elimina en vez de conservarse.
type Inventory struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
