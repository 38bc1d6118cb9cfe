package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: o se aplican saldo + movimiento, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// StockCache es el colaborador inyectado que mantiene el espejo rápido del stock total
// por producto, la membresía de alertas de stock bajo y un cache genérico de entidades.
//
// El cache es solo consultivo: el ledger siempre es la fuente de verdad y cualquier
// valor cacheado se puede reconstruir recalculando desde movimientos/saldos. Un fallo
// del cache nunca debe tumbar la operación autoritativa.
type StockCache interface {
	// GetStock devuelve el total cacheado de un producto; found=false obliga al caller
	// a recalcular desde el ledger.
	GetStock(ctx context.Context, productID string) (total int64, found bool, err error)
	// SetStock sobreescribe el total Y recalcula la membresía de alerta (stock < mínimo)
	// como una sola unidad: ningún lector debe ver un valor nuevo con membresía vieja.
	SetStock(ctx context.Context, productID string, total, minStockLevel int64) error
	// ListAlerts devuelve una foto puntual de los productos bajo su umbral.
	ListAlerts(ctx context.Context) ([]string, error)

	// Cache genérico de payloads de entidad (detalle de producto/bodega), con TTL.
	GetEntity(ctx context.Context, kind, id string) ([]byte, bool, error)
	PutEntity(ctx context.Context, kind, id string, payload []byte, ttl time.Duration) error
	DeleteEntity(ctx context.Context, kind, id string) error
}

// Kinds del cache de entidades.
const (
	CacheKindProduct   = "product"
	CacheKindWarehouse = "warehouse"
)
