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

func alertsFixture(t *testing.T) (*fakeStore, *memcache.Cache, *inventory.AlertsUseCase) {
	t.Helper()
	store := newFakeStore()
	store.addWarehouse(&entity.Warehouse{ID: whNorte, Name: "Bodega Norte"})
	store.addProduct(&entity.Product{ID: "p-critico", Name: "Tuerca", SKU: "TU-01", MinStockLevel: 20, HomeWarehouseID: whNorte})
	store.addProduct(&entity.Product{ID: "p-leve", Name: "Arandela", SKU: "AR-01", MinStockLevel: 10, HomeWarehouseID: whNorte})
	store.addProduct(&entity.Product{ID: "p-sano", Name: "Perno", SKU: "PE-01", MinStockLevel: 10, HomeWarehouseID: whNorte})
	store.seedBalance("p-critico", whNorte, 2)  // déficit 18
	store.seedBalance("p-leve", whNorte, 8)     // déficit 2
	store.seedBalance("p-sano", whNorte, 50)

	cache := memcache.New()
	uc := inventory.NewAlertsUseCase(cache, &fakeProductRepo{store: store}, &fakeInventoryRepo{store: store}, logger.Nop())
	return store, cache, uc
}

func TestListLowStock_OrdenadoPorDeficit(t *testing.T) {
	store, cache, uc := alertsFixture(t)
	ctx := context.Background()

	// Poblar el cache como lo haría el sincronizador.
	for id, p := range store.products {
		stock := store.balanceOf(id, whNorte)
		require.NoError(t, cache.SetStock(ctx, id, stock, p.MinStockLevel))
	}

	alerts, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2, "solo los productos bajo su umbral")
	assert.Equal(t, "p-critico", alerts[0].ProductID, "el mayor déficit va primero")
	assert.Equal(t, int64(2), alerts[0].CurrentStock)
	assert.Equal(t, int64(20), alerts[0].MinStockLevel)
	assert.Equal(t, "p-leve", alerts[1].ProductID)
}

func TestListLowStock_SinAlertasDevuelveVacio(t *testing.T) {
	_, _, uc := alertsFixture(t)

	alerts, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts, "cache vacío = sin alertas, nunca nil ni error")
}

// Con el cache caído, el listado degrada a recorrer el catálogo y recalcular
// cada saldo desde la fuente autoritativa.
func TestListLowStock_CacheCaidoRecalculaDesdeElLedger(t *testing.T) {
	store := newFakeStore()
	store.addWarehouse(&entity.Warehouse{ID: whNorte, Name: "Bodega Norte"})
	store.addProduct(&entity.Product{ID: "p-critico", Name: "Tuerca", MinStockLevel: 20, HomeWarehouseID: whNorte})
	store.addProduct(&entity.Product{ID: "p-sano", Name: "Perno", MinStockLevel: 10, HomeWarehouseID: whNorte})
	store.seedBalance("p-critico", whNorte, 2)
	store.seedBalance("p-sano", whNorte, 50)

	cache := &failingCache{err: domain.ErrCacheUnavailable}
	uc := inventory.NewAlertsUseCase(cache, &fakeProductRepo{store: store}, &fakeInventoryRepo{store: store}, logger.Nop())

	alerts, err := uc.ListLowStock(context.Background())
	require.NoError(t, err, "el fallo de cache no debe propagarse al caller")
	require.Len(t, alerts, 1)
	assert.Equal(t, "p-critico", alerts[0].ProductID)
	assert.Equal(t, int64(2), alerts[0].CurrentStock)
}
