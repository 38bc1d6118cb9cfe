package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios y del runner transaccional
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore estado compartido por todos los fakes de un test.
type fakeStore struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	movements  []*entity.StockMovement
	balances   map[string]*entity.Inventory // key: productID + "|" + warehouseID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		balances:   make(map[string]*entity.Inventory),
	}
}

func balanceKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func (s *fakeStore) addProduct(p *entity.Product) { s.products[p.ID] = p }

func (s *fakeStore) addWarehouse(w *entity.Warehouse) { s.warehouses[w.ID] = w }

// seedBalance deja un saldo materializado y el movimiento de entrada equivalente,
// para que ledger y saldos cuenten la misma historia.
func (s *fakeStore) seedBalance(productID, warehouseID string, qty int64) {
	s.balances[balanceKey(productID, warehouseID)] = &entity.Inventory{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
	}
	wh := warehouseID
	s.movements = append(s.movements, &entity.StockMovement{
		ID:                     "seed-" + productID + "-" + warehouseID,
		ProductID:              productID,
		DestinationWarehouseID: &wh,
		Quantity:               qty,
		Kind:                   entity.MovementKindAddition,
		Timestamp:              time.Now(),
	})
}

func (s *fakeStore) balanceOf(productID, warehouseID string) int64 {
	if inv, ok := s.balances[balanceKey(productID, warehouseID)]; ok {
		return inv.Quantity
	}
	return 0
}

func (s *fakeStore) hasBalanceRow(productID, warehouseID string) bool {
	_, ok := s.balances[balanceKey(productID, warehouseID)]
	return ok
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(warehouseID string, limit, offset int) ([]*entity.Product, error) {
	all, _ := r.ListAll()
	filtered := make([]*entity.Product, 0, len(all))
	for _, p := range all {
		if warehouseID == "" || p.HomeWarehouseID == warehouseID {
			filtered = append(filtered, p)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (r *fakeProductRepo) Count(warehouseID string) (int, error) {
	all, _ := r.List(warehouseID, len(r.store.products), 0)
	return len(all), nil
}

func (r *fakeProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListAll() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── WarehouseRepository ───────────────────────────────────────────────────────

type fakeWarehouseRepo struct{ store *fakeStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.store.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.store.warehouses[id], nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(r.store.warehouses))
	for _, w := range r.store.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeWarehouseRepo) Count() (int, error) {
	return len(r.store.warehouses), nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	filtered := make([]*entity.StockMovement, 0)
	// Más recientes primero, como la consulta real.
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		if r.store.movements[i].ProductID == productID {
			filtered = append(filtered, r.store.movements[i])
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (r *fakeMovementRepo) CountByProduct(productID string) (int, error) {
	n := 0
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovementRepo) SumByProduct(productID, warehouseID string) (int64, error) {
	var total int64
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			continue
		}
		if warehouseID == "" {
			if m.DestinationWarehouseID != nil {
				total += m.Quantity
			}
			if m.SourceWarehouseID != nil {
				total -= m.Quantity
			}
			continue
		}
		if m.DestinationWarehouseID != nil && *m.DestinationWarehouseID == warehouseID {
			total += m.Quantity
		}
		if m.SourceWarehouseID != nil && *m.SourceWarehouseID == warehouseID {
			total -= m.Quantity
		}
	}
	return total, nil
}

// ── InventoryRepository ───────────────────────────────────────────────────────

type fakeInventoryRepo struct{ store *fakeStore }

func (r *fakeInventoryRepo) Get(productID, warehouseID string) (*entity.Inventory, error) {
	inv, ok := r.store.balances[balanceKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) GetForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeInventoryRepo) Upsert(inv *entity.Inventory) error {
	key := balanceKey(inv.ProductID, inv.WarehouseID)
	if inv.Quantity == 0 {
		delete(r.store.balances, key)
		return nil
	}
	cp := *inv
	r.store.balances[key] = &cp
	return nil
}

func (r *fakeInventoryRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	for _, inv := range r.store.balances {
		if inv.ProductID == productID {
			total += inv.Quantity
		}
	}
	return total, nil
}

func (r *fakeInventoryRepo) ListByProduct(productID string) ([]*entity.Inventory, error) {
	out := make([]*entity.Inventory, 0)
	for _, inv := range r.store.balances {
		if inv.ProductID == productID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el callback directamente sobre el store compartido.
// Los casos de uso no mutan nada antes de validar, así que un error del callback
// equivale a un rollback.
type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(
		&fakeMovementRepo{store: r.store},
		&fakeInventoryRepo{store: r.store},
		&fakeProductRepo{store: r.store},
	)
}

// ── Cache que siempre falla (para probar degradación) ─────────────────────────

type failingCache struct{ err error }

func (c *failingCache) GetStock(context.Context, string) (int64, bool, error) { return 0, false, c.err }
func (c *failingCache) SetStock(context.Context, string, int64, int64) error  { return c.err }
func (c *failingCache) ListAlerts(context.Context) ([]string, error)          { return nil, c.err }
func (c *failingCache) GetEntity(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, c.err
}
func (c *failingCache) PutEntity(context.Context, string, string, []byte, time.Duration) error {
	return c.err
}
func (c *failingCache) DeleteEntity(context.Context, string, string) error { return c.err }
