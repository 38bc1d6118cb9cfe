package dto

import "time"

// RegisterMovementRequest entrada para registrar una entrada o salida de stock.
// kind: addition (requiere warehouse_id destino) o removal (warehouse_id origen).
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Kind        string `json:"kind"`
	Quantity    int64  `json:"quantity"`
}

// TransferRequest entrada para transferir stock entre bodegas.
type TransferRequest struct {
	ProductID         string `json:"product_id"`
	SourceWarehouseID string `json:"source_warehouse_id"`
	DestWarehouseID   string `json:"destination_warehouse_id"`
	Quantity          int64  `json:"quantity"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID                     string    `json:"id"`
	ProductID              string    `json:"product_id"`
	SourceWarehouseID      *string   `json:"source_warehouse_id"`
	DestinationWarehouseID *string   `json:"destination_warehouse_id"`
	Quantity               int64     `json:"quantity"`
	Kind                   string    `json:"kind"`
	Timestamp              time.Time `json:"timestamp"`
}

// MovementListResponse lista paginada de movimientos de un producto.
type MovementListResponse struct {
	Items     []MovementResponse `json:"items"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
	Total     int                `json:"total"`
	PageCount int                `json:"page_count"`
}

// StockResponse stock actual de un producto (total o por bodega).
type StockResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	Stock       int64  `json:"stock"`
}

// LowStockAlertDTO producto bajo su umbral de stock mínimo.
type LowStockAlertDTO struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	SKU           string `json:"sku,omitempty"`
	MinStockLevel int64  `json:"min_stock_level"`
	WarehouseID   string `json:"warehouse_id"`
	CurrentStock  int64  `json:"current_stock"`
}
