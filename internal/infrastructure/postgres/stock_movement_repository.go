package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del log append-only sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create agrega un movimiento al ledger. Solo INSERT: los movimientos nunca se tocan.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, source_warehouse_id, destination_warehouse_id, quantity, kind, ts, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := nullIfEmpty(movement.CreatedBy)
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.SourceWarehouseID, movement.DestinationWarehouseID,
		movement.Quantity, movement.Kind, movement.Timestamp, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, los más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, source_warehouse_id, destination_warehouse_id, quantity, kind, ts, created_by
		FROM stock_movements WHERE product_id = $1
		ORDER BY ts DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.SourceWarehouseID, &m.DestinationWarehouseID,
			&m.Quantity, &m.Kind, &m.Timestamp, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos de un producto.
func (r *StockMovementRepo) CountByProduct(productID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// SumByProduct recalcula el stock desde el log: entradas menos salidas.
// warehouseID vacío suma sobre todas las bodegas (las transferencias netean a cero);
// con bodega, entra lo que tiene ese destino y sale lo que tiene ese origen.
func (r *StockMovementRepo) SumByProduct(productID, warehouseID string) (int64, error) {
	var query string
	args := []any{productID}
	if warehouseID == "" {
		query = `
			SELECT COALESCE(SUM(CASE WHEN destination_warehouse_id IS NOT NULL THEN quantity ELSE 0 END), 0)
			     - COALESCE(SUM(CASE WHEN source_warehouse_id IS NOT NULL THEN quantity ELSE 0 END), 0)
			FROM stock_movements WHERE product_id = $1`
	} else {
		query = `
			SELECT COALESCE(SUM(CASE WHEN destination_warehouse_id = $2 THEN quantity ELSE 0 END), 0)
			     - COALESCE(SUM(CASE WHEN source_warehouse_id = $2 THEN quantity ELSE 0 END), 0)
			FROM stock_movements WHERE product_id = $1`
		args = append(args, warehouseID)
	}
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return total, nil
}
