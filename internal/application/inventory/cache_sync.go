package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// CacheSyncer recalcula el stock total de un producto desde el ledger y lo escribe en
// el cache (lo que en cascada actualiza la membresía de alerta). Es idempotente:
// repetir la sincronización con el mismo estado del ledger produce el mismo cache,
// así que es seguro reintentarla tras un fallo parcial post-commit.
type CacheSyncer struct {
	inventoryRepo repository.InventoryRepository
	cache         StockCache
	log           *logger.Logger
}

// NewCacheSyncer construye el sincronizador.
func NewCacheSyncer(inventoryRepo repository.InventoryRepository, cache StockCache, log *logger.Logger) *CacheSyncer {
	return &CacheSyncer{inventoryRepo: inventoryRepo, cache: cache, log: log}
}

// Sync recalcula el total entre todas las bodegas y lo escribe en cache.
// Un fallo aquí nunca es fatal para la operación que ya comiteó en el ledger:
// se registra como warning y el pase de reconciliación lo sana después.
func (s *CacheSyncer) Sync(ctx context.Context, product *entity.Product) error {
	total, err := s.inventoryRepo.SumByProduct(product.ID)
	if err != nil {
		return fmt.Errorf("recalcular stock total: %w", err)
	}
	if err := s.cache.SetStock(ctx, product.ID, total, product.MinStockLevel); err != nil {
		s.log.Warn().
			Err(err).
			Str("product_id", product.ID).
			Int64("total", total).
			Msg("sincronización de cache fallida; queda para el pase de reconciliación")
		return err
	}
	return nil
}
