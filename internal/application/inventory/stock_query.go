package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// StockQueryUseCase consultas de stock: camino rápido por cache con fallback
// autoritativo al ledger, saldo por bodega y listado de movimientos.
type StockQueryUseCase struct {
	movementRepo  repository.StockMovementRepository
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	cache         StockCache
	log           *logger.Logger
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	movementRepo repository.StockMovementRepository,
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	cache StockCache,
	log *logger.Logger,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		movementRepo:  movementRepo,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
		log:           log,
	}
}

// GetProductStock devuelve el stock total de un producto entre todas las bodegas.
// Intenta primero el cache; si está ausente o falla, recalcula desde el log de
// movimientos y repuebla el cache (best effort, los fallos de cache solo se loguean).
func (uc *StockQueryUseCase) GetProductStock(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}

	total, found, err := uc.cache.GetStock(ctx, productID)
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("cache no disponible; recalculando desde el ledger")
	} else if found {
		return total, nil
	}

	total, err = uc.movementRepo.SumByProduct(productID, "")
	if err != nil {
		return 0, err
	}
	if err := uc.cache.SetStock(ctx, productID, total, product.MinStockLevel); err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("no se pudo repoblar el cache de stock")
	}
	return total, nil
}

// GetWarehouseProductStock devuelve el saldo materializado de un producto en una
// bodega (0 si no hay fila).
func (uc *StockQueryUseCase) GetWarehouseProductStock(ctx context.Context, warehouseID, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return 0, err
	}
	if product == nil || warehouse == nil {
		return 0, domain.ErrNotFound
	}

	inv, err := uc.inventoryRepo.Get(productID, warehouseID)
	if err != nil {
		return 0, err
	}
	if inv == nil {
		return 0, nil
	}
	return inv.Quantity, nil
}

// ListProductMovements lista el historial de movimientos de un producto, paginado.
func (uc *StockQueryUseCase) ListProductMovements(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	page.Normalize()
	movements, err := uc.movementRepo.ListByProduct(productID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.CountByProduct(productID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items:     items,
		Page:      page.Page,
		Limit:     page.Limit,
		Total:     total,
		PageCount: dto.PageCount(total, page.Limit),
	}, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                     m.ID,
		ProductID:              m.ProductID,
		SourceWarehouseID:      m.SourceWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		Quantity:               m.Quantity,
		Kind:                   m.Kind,
		Timestamp:              m.Timestamp,
	}
}
