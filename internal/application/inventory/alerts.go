package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// AlertsUseCase lista los productos bajo su umbral de stock mínimo.
// Camino normal: membresía del set de alertas del cache, enriquecida con el detalle
// del producto. Si el cache no responde, degrada a recalcular todo desde el ledger.
type AlertsUseCase struct {
	cache         StockCache
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	log           *logger.Logger
}

// NewAlertsUseCase construye el caso de uso.
func NewAlertsUseCase(
	cache StockCache,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	log *logger.Logger,
) *AlertsUseCase {
	return &AlertsUseCase{
		cache:         cache,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		log:           log,
	}
}

// ListLowStock devuelve la foto puntual de alertas. La consistencia es la del cache:
// una escritura de stock siempre deja la membresía alineada con el valor escrito.
func (uc *AlertsUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	ids, err := uc.cache.ListAlerts(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("cache de alertas no disponible; recalculando desde el ledger")
		return uc.recomputeFromLedger(ctx)
	}
	if len(ids) == 0 {
		return []dto.LowStockAlertDTO{}, nil
	}

	products, err := uc.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertDTO, 0, len(products))
	for _, p := range products {
		stock, found, err := uc.cache.GetStock(ctx, p.ID)
		if err != nil || !found {
			stock, err = uc.inventoryRepo.SumByProduct(p.ID)
			if err != nil {
				return nil, err
			}
		}
		alerts = append(alerts, toAlertDTO(p, stock))
	}
	sortAlerts(alerts)
	return alerts, nil
}

// recomputeFromLedger recorre el catálogo y filtra por saldo real. Más caro, pero
// mantiene el endpoint vivo cuando el cache está caído.
func (uc *AlertsUseCase) recomputeFromLedger(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertDTO, 0)
	for _, p := range products {
		stock, err := uc.inventoryRepo.SumByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		if stock < p.MinStockLevel {
			alerts = append(alerts, toAlertDTO(p, stock))
		}
	}
	sortAlerts(alerts)
	return alerts, nil
}

func toAlertDTO(p *entity.Product, stock int64) dto.LowStockAlertDTO {
	return dto.LowStockAlertDTO{
		ProductID:     p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		MinStockLevel: p.MinStockLevel,
		WarehouseID:   p.HomeWarehouseID,
		CurrentStock:  stock,
	}
}

// sortAlerts ordena por déficit descendente para que lo más crítico salga primero.
func sortAlerts(alerts []dto.LowStockAlertDTO) {
	sort.SliceStable(alerts, func(i, j int) bool {
		defI := alerts[i].MinStockLevel - alerts[i].CurrentStock
		defJ := alerts[j].MinStockLevel - alerts[j].CurrentStock
		if defI != defJ {
			return defI > defJ
		}
		return alerts[i].Name < alerts[j].Name
	})
}
