package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memcache"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// movementFixture: una bodega, un producto con umbral 10 y sin stock inicial.
func movementFixture(t *testing.T) (*fakeStore, *memcache.Cache, *inventory.RecordMovementUseCase) {
	t.Helper()
	store := newFakeStore()
	store.addWarehouse(&entity.Warehouse{ID: whNorte, Name: "Bodega Norte"})
	store.addProduct(&entity.Product{
		ID:              prodID,
		Name:            "Tornillo 3/8",
		MinStockLevel:   10,
		HomeWarehouseID: whNorte,
	})

	cache := memcache.New()
	syncer := inventory.NewCacheSyncer(&fakeInventoryRepo{store: store}, cache, logger.Nop())
	uc := inventory.NewRecordMovementUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeWarehouseRepo{store: store},
		syncer,
		logger.Nop(),
	)
	return store, cache, uc
}

func TestRecordMovement_EntradaCreaSaldoYSincronizaCache(t *testing.T) {
	store, cache, uc := movementFixture(t)

	movement, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID:   prodID,
		WarehouseID: whNorte,
		Kind:        entity.MovementKindAddition,
		Quantity:    25,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), store.balanceOf(prodID, whNorte))
	require.NotNil(t, movement.DestinationWarehouseID)
	assert.Equal(t, whNorte, *movement.DestinationWarehouseID)
	assert.Nil(t, movement.SourceWarehouseID, "una entrada no tiene bodega origen")

	total, found, err := cache.GetStock(context.Background(), prodID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(25), total)
}

func TestRecordMovement_SalidaSinStockSuficiente(t *testing.T) {
	store, _, uc := movementFixture(t)
	store.seedBalance(prodID, whNorte, 3)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID:   prodID,
		WarehouseID: whNorte,
		Kind:        entity.MovementKindRemoval,
		Quantity:    5,
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(3), insufficient.Available)
	assert.Equal(t, int64(5), insufficient.Requested)
	assert.Equal(t, int64(3), store.balanceOf(prodID, whNorte), "el saldo no debe cambiar")
}

func TestRecordMovement_SalidaAgotaSaldoEliminaFila(t *testing.T) {
	store, _, uc := movementFixture(t)
	store.seedBalance(prodID, whNorte, 5)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID:   prodID,
		WarehouseID: whNorte,
		Kind:        entity.MovementKindRemoval,
		Quantity:    5,
	})
	require.NoError(t, err)
	assert.False(t, store.hasBalanceRow(prodID, whNorte), "saldo cero = fila eliminada")
}

func TestRecordMovement_ValidacionesDeEntrada(t *testing.T) {
	_, _, uc := movementFixture(t)
	ctx := context.Background()

	casos := []inventory.MovementInput{
		{ProductID: prodID, WarehouseID: whNorte, Kind: "transfer", Quantity: 5}, // transfer va por otro caso de uso
		{ProductID: prodID, WarehouseID: whNorte, Kind: "ajuste", Quantity: 5},   // tipo desconocido
		{ProductID: prodID, WarehouseID: whNorte, Kind: entity.MovementKindAddition, Quantity: 0},
		{ProductID: "", WarehouseID: whNorte, Kind: entity.MovementKindAddition, Quantity: 5},
	}
	for _, in := range casos {
		_, err := uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// La membresía de alerta sigue al stock respecto del umbral: bajar a 5 con mínimo 10
// enciende la alerta, subir a 12 la apaga.
func TestRecordMovement_AlertaSigueAlUmbral(t *testing.T) {
	_, cache, uc := movementFixture(t)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, inventory.MovementInput{
		ProductID: prodID, WarehouseID: whNorte, Kind: entity.MovementKindAddition, Quantity: 5,
	})
	require.NoError(t, err)

	ids, err := cache.ListAlerts(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, prodID, "5 < 10 debe estar en alerta")

	_, err = uc.RecordMovement(ctx, inventory.MovementInput{
		ProductID: prodID, WarehouseID: whNorte, Kind: entity.MovementKindAddition, Quantity: 7,
	})
	require.NoError(t, err)

	ids, err = cache.ListAlerts(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, prodID, "12 >= 10 debe salir de la alerta")
}

// El ledger y el recálculo siempre cuentan la misma historia: después de una mezcla de
// movimientos, la suma desde movimientos coincide con los saldos materializados.
func TestRecordMovement_LedgerYSaldosCoinciden(t *testing.T) {
	store, _, uc := movementFixture(t)
	ctx := context.Background()

	for _, in := range []inventory.MovementInput{
		{ProductID: prodID, WarehouseID: whNorte, Kind: entity.MovementKindAddition, Quantity: 40},
		{ProductID: prodID, WarehouseID: whNorte, Kind: entity.MovementKindRemoval, Quantity: 15},
		{ProductID: prodID, WarehouseID: whNorte, Kind: entity.MovementKindAddition, Quantity: 8},
	} {
		_, err := uc.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	movRepo := &fakeMovementRepo{store: store}
	fromLedger, err := movRepo.SumByProduct(prodID, "")
	require.NoError(t, err)
	invRepo := &fakeInventoryRepo{store: store}
	fromBalances, err := invRepo.SumByProduct(prodID)
	require.NoError(t, err)

	assert.Equal(t, int64(33), fromLedger)
	assert.Equal(t, fromLedger, fromBalances, "ledger y saldos materializados deben coincidir")
}

// El reconciliador reconstruye el cache completo desde los saldos; repetir el pase
// no cambia nada (idempotencia).
func TestReconciler_ReconstruyeCacheDesdeElLedger(t *testing.T) {
	store := newFakeStore()
	store.addWarehouse(&entity.Warehouse{ID: whNorte, Name: "Bodega Norte"})
	store.addProduct(&entity.Product{ID: "p-bajo", Name: "Tuerca", MinStockLevel: 10, HomeWarehouseID: whNorte})
	store.addProduct(&entity.Product{ID: "p-ok", Name: "Arandela", MinStockLevel: 10, HomeWarehouseID: whNorte})
	store.seedBalance("p-bajo", whNorte, 4)
	store.seedBalance("p-ok", whNorte, 100)

	cache := memcache.New()
	syncer := inventory.NewCacheSyncer(&fakeInventoryRepo{store: store}, cache, logger.Nop())
	rec := inventory.NewReconciler(&fakeProductRepo{store: store}, syncer, 0, logger.Nop())

	ctx := context.Background()
	require.NoError(t, rec.RunOnce(ctx))
	require.NoError(t, rec.RunOnce(ctx), "repetir el pase debe ser inofensivo")

	total, found, err := cache.GetStock(ctx, "p-ok")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(100), total)

	ids, err := cache.ListAlerts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p-bajo"}, ids)
}
