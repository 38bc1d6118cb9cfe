package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU vacío se guarda como NULL para no chocar
// con el constraint único.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, min_stock_level, home_warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, nullIfEmpty(product.SKU), product.MinStockLevel,
		product.HomeWarehouseID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, sku, min_stock_level, home_warehouse_id, created_at, updated_at
		FROM products WHERE id = $1`
	product, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Update actualiza un producto existente (incluida la bodega principal informativa).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, min_stock_level = $4, home_warehouse_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, nullIfEmpty(product.SKU), product.MinStockLevel,
		product.HomeWarehouseID, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con paginación; warehouseID no vacío filtra por bodega principal.
func (r *ProductRepo) List(warehouseID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, sku, min_stock_level, home_warehouse_id, created_at, updated_at
		FROM products`
	args := []any{}
	if warehouseID != "" {
		query += ` WHERE home_warehouse_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, warehouseID, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Count cuenta productos (con el mismo filtro de List).
func (r *ProductRepo) Count(warehouseID string) (int, error) {
	var total int
	var err error
	if warehouseID != "" {
		err = r.q.QueryRow(context.Background(),
			`SELECT COUNT(*) FROM products WHERE home_warehouse_id = $1`, warehouseID).Scan(&total)
	} else {
		err = r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM products`).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// ListByIDs devuelve los productos cuyos IDs estén en la lista.
func (r *ProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, name, sku, min_stock_level, home_warehouse_id, created_at, updated_at
		FROM products WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListAll devuelve el catálogo completo (reconciliación de cache).
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	query := `
		SELECT id, name, sku, min_stock_level, home_warehouse_id, created_at, updated_at
		FROM products ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var sku *string
	if err := row.Scan(&p.ID, &p.Name, &sku, &p.MinStockLevel, &p.HomeWarehouseID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if sku != nil {
		p.SKU = *sku
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
