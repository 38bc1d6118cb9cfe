package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// MinStockLevel nulo aplica el umbral por defecto (10).
type CreateProductRequest struct {
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	MinStockLevel *int64 `json:"min_stock_level"`
	WarehouseID   string `json:"warehouse_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku,omitempty"`
	MinStockLevel int64     `json:"min_stock_level"`
	WarehouseID   string    `json:"warehouse_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items     []ProductResponse `json:"items"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
	Total     int               `json:"total"`
	PageCount int               `json:"page_count"`
}
