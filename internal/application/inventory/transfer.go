package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// TransferUseCase mueve stock entre dos bodegas como una sola unidad lógica:
//
//	Validate → StockCheck → Apply dentro de una transacción con bloqueo de fila,
//	CacheSync después del commit.
//
// Cualquier fallo antes de Apply deja todo intacto. Un fallo en CacheSync tras el
// commit no es fatal: el ledger manda y el reconciliador repite la sincronización.
type TransferUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	syncer        *CacheSyncer
	log           *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	syncer *CacheSyncer,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		syncer:        syncer,
		log:           log,
	}
}

// TransferInput entrada para una transferencia entre bodegas.
type TransferInput struct {
	ProductID         string
	SourceWarehouseID string
	DestWarehouseID   string
	Quantity          int64
	UserID            string
}

// Transfer ejecuta la transferencia y devuelve el único movimiento `transfer` agregado.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*entity.StockMovement, error) {
	// Fase 1: Validate
	if input.ProductID == "" || input.SourceWarehouseID == "" || input.DestWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.SourceWarehouseID == input.DestWarehouseID || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	source, err := uc.warehouseRepo.GetByID(input.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.warehouseRepo.GetByID(input.DestWarehouseID)
	if err != nil {
		return nil, err
	}
	if source == nil || dest == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:                     uuid.New().String(),
		ProductID:              input.ProductID,
		SourceWarehouseID:      &input.SourceWarehouseID,
		DestinationWarehouseID: &input.DestWarehouseID,
		Quantity:               input.Quantity,
		Kind:                   entity.MovementKindTransfer,
		Timestamp:              now,
		CreatedBy:              input.UserID,
	}

	// Fases 2 y 3: StockCheck + Apply bajo la misma transacción.
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		// StockCheck: bloquea el saldo origen. Si no hay fila materializada, cae al
		// recálculo autoritativo desde el log de movimientos antes de rechazar.
		origin, err := invRepo.GetForUpdate(input.ProductID, input.SourceWarehouseID)
		if err != nil {
			return err
		}
		var available int64
		if origin != nil {
			available = origin.Quantity
		} else {
			available, err = movRepo.SumByProduct(input.ProductID, input.SourceWarehouseID)
			if err != nil {
				return err
			}
		}
		if available < input.Quantity {
			return &domain.InsufficientStockError{Available: available, Requested: input.Quantity}
		}

		// Apply: decrementa origen (fila fuera si llega a cero), incrementa destino,
		// agrega exactamente un movimiento transfer con ambas bodegas.
		if origin == nil {
			origin = &entity.Inventory{ProductID: input.ProductID, WarehouseID: input.SourceWarehouseID}
		}
		origin.Quantity = available - input.Quantity
		origin.UpdatedAt = now
		if err := invRepo.Upsert(origin); err != nil {
			return err
		}

		target, err := invRepo.Get(input.ProductID, input.DestWarehouseID)
		if err != nil {
			return err
		}
		if target == nil {
			target = &entity.Inventory{ProductID: input.ProductID, WarehouseID: input.DestWarehouseID}
		}
		target.Quantity += input.Quantity
		target.UpdatedAt = now
		if err := invRepo.Upsert(target); err != nil {
			return err
		}

		if err := movRepo.Create(movement); err != nil {
			return err
		}

		// Origen agotado: la bodega principal informativa pasa al destino.
		if origin.Quantity == 0 && product.HomeWarehouseID == input.SourceWarehouseID {
			product.HomeWarehouseID = input.DestWarehouseID
			product.UpdatedAt = now
			if err := productRepo.Update(product); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fase 4: CacheSync. El total entre bodegas no cambia con una transferencia, pero
	// reescribirlo deja cache y alertas consistentes aunque estuvieran fríos o viejos.
	_ = uc.syncer.Sync(ctx, product)

	return movement, nil
}
