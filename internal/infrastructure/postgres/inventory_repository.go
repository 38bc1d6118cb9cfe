package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del saldo materializado sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el saldo de un producto en una bodega (nil si no hay fila).
func (r *InventoryRepo) Get(productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventories WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), "get inventory")
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventories WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), "get inventory for update")
}

// Upsert inserta o actualiza el saldo. Cantidad cero elimina la fila: la política
// uniforme es no conservar saldos en cero.
func (r *InventoryRepo) Upsert(inventory *entity.Inventory) error {
	if inventory.Quantity == 0 {
		_, err := r.q.Exec(context.Background(),
			`DELETE FROM inventories WHERE product_id = $1 AND warehouse_id = $2`,
			inventory.ProductID, inventory.WarehouseID)
		if err != nil {
			return fmt.Errorf("delete zero inventory: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO inventories (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		inventory.ProductID, inventory.WarehouseID, inventory.Quantity, inventory.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// SumByProduct suma el saldo de un producto entre todas las bodegas.
func (r *InventoryRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM inventories WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum inventory: %w", err)
	}
	return total, nil
}

// ListByProduct lista los saldos por bodega de un producto.
func (r *InventoryRepo) ListByProduct(productID string) ([]*entity.Inventory, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventories WHERE product_id = $1 ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) scanOne(row pgx.Row, op string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &inv, nil
}
