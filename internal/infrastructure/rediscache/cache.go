package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// Claves en Redis (mismo esquema que el sistema original: stock:<id> por producto).
const (
	stockKeyPrefix  = "stock:"
	alertsKey       = "alerts:low_stock"
	entityKeyPrefix = "entity:"
)

var _ inventory.StockCache = (*Cache)(nil)

// Cache implementación de StockCache sobre Redis.
//
// Los enteros de stock y el set de alertas no llevan TTL: cada escritura y el pase de
// reconciliación los reconstruyen. Los payloads de entidad sí expiran (TTL del caller).
// Todo error de red se envuelve en ErrCacheUnavailable para que los casos de uso
// degraden a recalcular desde el ledger sin propagar el fallo.
type Cache struct {
	rdb *redis.Client
}

// New conecta al Redis de la URL (redis://host:port/db) y verifica con un ping.
func New(ctx context.Context, url string) (*Cache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

// Close cierra la conexión.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// GetStock lee el total cacheado de un producto.
func (c *Cache) GetStock(ctx context.Context, productID string) (int64, bool, error) {
	val, err := c.rdb.Get(ctx, stockKeyPrefix+productID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, unavailable(err)
	}
	total, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Valor corrupto: tratarlo como miss para forzar el recálculo.
		return 0, false, nil
	}
	return total, true, nil
}

// SetStock escribe el total y ajusta la membresía de alerta en un solo pipeline
// transaccional: ningún lector ve el valor nuevo con la membresía vieja ni al revés.
func (c *Cache) SetStock(ctx context.Context, productID string, total, minStockLevel int64) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, stockKeyPrefix+productID, total, 0)
		if total < minStockLevel {
			pipe.SAdd(ctx, alertsKey, productID)
		} else {
			pipe.SRem(ctx, alertsKey, productID)
		}
		return nil
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// ListAlerts devuelve los IDs de producto actualmente bajo su umbral.
func (c *Cache) ListAlerts(ctx context.Context) ([]string, error) {
	ids, err := c.rdb.SMembers(ctx, alertsKey).Result()
	if err != nil {
		return nil, unavailable(err)
	}
	return ids, nil
}

// GetEntity lee un payload de entidad cacheado.
func (c *Cache) GetEntity(ctx context.Context, kind, id string) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, entityKey(kind, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable(err)
	}
	return payload, true, nil
}

// PutEntity guarda un payload de entidad con TTL.
func (c *Cache) PutEntity(ctx context.Context, kind, id string, payload []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, entityKey(kind, id), payload, ttl).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

// DeleteEntity invalida un payload de entidad.
func (c *Cache) DeleteEntity(ctx context.Context, kind, id string) error {
	if err := c.rdb.Del(ctx, entityKey(kind, id)).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func entityKey(kind, id string) string {
	return entityKeyPrefix + kind + ":" + id
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
}
