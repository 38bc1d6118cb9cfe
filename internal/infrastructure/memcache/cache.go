package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

var _ inventory.StockCache = (*Cache)(nil)

// Cache implementación en memoria de StockCache. Es el sustituto inyectable para
// tests y el modo degradado cuando no hay REDIS_URL configurado. El mutex cubre cada
// operación completa, así que valor de stock y membresía de alerta cambian como unidad.
type Cache struct {
	mu       sync.RWMutex
	stock    map[string]int64
	alerts   map[string]struct{}
	entities map[string]entityEntry
}

type entityEntry struct {
	payload   []byte
	expiresAt time.Time // zero = sin expiración
}

// New construye un cache vacío.
func New() *Cache {
	return &Cache{
		stock:    make(map[string]int64),
		alerts:   make(map[string]struct{}),
		entities: make(map[string]entityEntry),
	}
}

// GetStock lee el total cacheado de un producto.
func (c *Cache) GetStock(_ context.Context, productID string) (int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total, ok := c.stock[productID]
	return total, ok, nil
}

// SetStock escribe el total y ajusta la membresía de alerta bajo el mismo lock.
func (c *Cache) SetStock(_ context.Context, productID string, total, minStockLevel int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stock[productID] = total
	if total < minStockLevel {
		c.alerts[productID] = struct{}{}
	} else {
		delete(c.alerts, productID)
	}
	return nil
}

// ListAlerts devuelve una copia de los IDs bajo umbral.
func (c *Cache) ListAlerts(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.alerts))
	for id := range c.alerts {
		ids = append(ids, id)
	}
	return ids, nil
}

// GetEntity lee un payload de entidad; respeta la expiración perezosamente.
func (c *Cache) GetEntity(_ context.Context, kind, id string) ([]byte, bool, error) {
	key := kind + ":" + id
	c.mu.RLock()
	entry, ok := c.entities[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entities, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// PutEntity guarda un payload de entidad con TTL (0 = sin expiración).
func (c *Cache) PutEntity(_ context.Context, kind, id string, payload []byte, ttl time.Duration) error {
	entry := entityEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entities[kind+":"+id] = entry
	c.mu.Unlock()
	return nil
}

// DeleteEntity invalida un payload de entidad.
func (c *Cache) DeleteEntity(_ context.Context, kind, id string) error {
	c.mu.Lock()
	delete(c.entities, kind+":"+id)
	c.mu.Unlock()
	return nil
}
