package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Reconciler es el pase de fondo que recalcula el cache de stock desde el ledger.
// Sana cualquier CacheSync perdido tras un fallo parcial post-commit y calienta el
// cache al arrancar. Recalcular y reescribir es idempotente, así que repetir un pase
// nunca hace daño.
type Reconciler struct {
	productRepo repository.ProductRepository
	syncer      *CacheSyncer
	interval    time.Duration
	log         *logger.Logger
}

// NewReconciler construye el reconciliador. interval <= 0 deshabilita el loop
// (RunOnce sigue disponible).
func NewReconciler(productRepo repository.ProductRepository, syncer *CacheSyncer, interval time.Duration, log *logger.Logger) *Reconciler {
	return &Reconciler{
		productRepo: productRepo,
		syncer:      syncer,
		interval:    interval,
		log:         log,
	}
}

// Run ejecuta pases periódicos hasta que ctx se cancele. Pensado para `go r.Run(ctx)`.
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("reconciliador de cache detenido")
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.log.Warn().Err(err).Msg("pase de reconciliación con errores")
			}
		}
	}
}

// RunOnce recorre el catálogo completo y reescribe stock + alertas por producto.
// Devuelve el último error visto; los productos restantes se procesan igual.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	products, err := r.productRepo.ListAll()
	if err != nil {
		return err
	}
	var lastErr error
	synced := 0
	for _, p := range products {
		if err := r.syncer.Sync(ctx, p); err != nil {
			lastErr = err
			continue
		}
		synced++
	}
	r.log.Debug().Int("products", len(products)).Int("synced", synced).Msg("pase de reconciliación de cache")
	return lastErr
}
