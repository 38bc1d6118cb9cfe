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

// RecordMovementUseCase registra entradas (addition) y salidas (removal) de stock de
// forma transaccional: bloqueo de fila sobre el saldo (SELECT FOR UPDATE), append del
// movimiento al ledger y Commit/Rollback. Las transferencias van por TransferUseCase.
type RecordMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	syncer        *CacheSyncer
	log           *logger.Logger
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	syncer *CacheSyncer,
	log *logger.Logger,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		syncer:        syncer,
		log:           log,
	}
}

// MovementInput entrada para registrar un movimiento de entrada o salida.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	Kind        string // addition | removal
	Quantity    int64
	UserID      string
}

// RecordMovement valida, aplica el movimiento al saldo y lo agrega al ledger en una
// transacción; después de comitear sincroniza el cache (fallo de cache = warning, no error).
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.Kind != entity.MovementKindAddition && input.Kind != entity.MovementKindRemoval {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.WarehouseID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Kind:      input.Kind,
		Timestamp: now,
		CreatedBy: input.UserID,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		_ repository.ProductRepository,
	) error {
		switch input.Kind {
		case entity.MovementKindAddition:
			movement.DestinationWarehouseID = &input.WarehouseID
			return applyAddition(movRepo, invRepo, movement, input.WarehouseID, now)
		default: // removal
			movement.SourceWarehouseID = &input.WarehouseID
			return applyRemoval(movRepo, invRepo, movement, input.WarehouseID, now)
		}
	})
	if err != nil {
		return nil, err
	}

	// El ledger ya comiteó: un fallo de cache aquí es soft y lo sana el reconciliador.
	_ = uc.syncer.Sync(ctx, product)

	return movement, nil
}

// applyAddition bloquea el saldo destino, lo incrementa y agrega el movimiento.
func applyAddition(
	movRepo repository.StockMovementRepository,
	invRepo repository.InventoryRepository,
	movement *entity.StockMovement,
	warehouseID string,
	now time.Time,
) error {
	inv, err := invRepo.GetForUpdate(movement.ProductID, warehouseID)
	if err != nil {
		return err
	}
	if inv == nil {
		inv = &entity.Inventory{ProductID: movement.ProductID, WarehouseID: warehouseID}
	}
	inv.Quantity += movement.Quantity
	inv.UpdatedAt = now
	if err := invRepo.Upsert(inv); err != nil {
		return err
	}
	return movRepo.Create(movement)
}

// applyRemoval bloquea el saldo origen, verifica suficiencia, lo decrementa
// (eliminando la fila si queda en cero) y agrega el movimiento.
func applyRemoval(
	movRepo repository.StockMovementRepository,
	invRepo repository.InventoryRepository,
	movement *entity.StockMovement,
	warehouseID string,
	now time.Time,
) error {
	inv, err := invRepo.GetForUpdate(movement.ProductID, warehouseID)
	if err != nil {
		return err
	}
	var available int64
	if inv != nil {
		available = inv.Quantity
	}
	if available < movement.Quantity {
		return &domain.InsufficientStockError{Available: available, Requested: movement.Quantity}
	}
	inv.Quantity = available - movement.Quantity
	inv.UpdatedAt = now
	if err := invRepo.Upsert(inv); err != nil {
		return err
	}
	return movRepo.Create(movement)
}
