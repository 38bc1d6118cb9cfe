package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memcache"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Fakes mínimos: solo lo que estos casos de uso tocan.

type productRepoFake struct {
	byID map[string]*entity.Product
}

func (r *productRepoFake) Create(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}
func (r *productRepoFake) GetByID(id string) (*entity.Product, error) { return r.byID[id], nil }
func (r *productRepoFake) Update(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}
func (r *productRepoFake) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *productRepoFake) Count(string) (int, error)                        { return len(r.byID), nil }
func (r *productRepoFake) ListByIDs([]string) ([]*entity.Product, error)    { return nil, nil }
func (r *productRepoFake) ListAll() ([]*entity.Product, error)              { return nil, nil }

type warehouseRepoFake struct {
	byID map[string]*entity.Warehouse
}

func (r *warehouseRepoFake) Create(w *entity.Warehouse) error {
	r.byID[w.ID] = w
	return nil
}
func (r *warehouseRepoFake) GetByID(id string) (*entity.Warehouse, error) { return r.byID[id], nil }
func (r *warehouseRepoFake) List(int, int) ([]*entity.Warehouse, error)   { return nil, nil }
func (r *warehouseRepoFake) Count() (int, error)                          { return len(r.byID), nil }

func productFixture(t *testing.T) (*productRepoFake, *usecase.ProductUseCase) {
	t.Helper()
	products := &productRepoFake{byID: make(map[string]*entity.Product)}
	warehouses := &warehouseRepoFake{byID: map[string]*entity.Warehouse{
		"w-1": {ID: "w-1", Name: "Bodega Norte"},
	}}
	uc := usecase.NewProductUseCase(products, warehouses, memcache.New(), time.Hour, logger.Nop())
	return products, uc
}

func TestCreateProduct_UmbralPorDefecto(t *testing.T) {
	_, uc := productFixture(t)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:        "Tornillo 3/8",
		SKU:         "TO-38",
		WarehouseID: "w-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.MinStockLevel, "sin umbral explícito aplica el default 10")
	assert.Equal(t, "w-1", out.WarehouseID)
	assert.NotEmpty(t, out.ID)
}

func TestCreateProduct_UmbralExplicito(t *testing.T) {
	_, uc := productFixture(t)
	nivel := int64(25)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:          "Tuerca",
		MinStockLevel: &nivel,
		WarehouseID:   "w-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.MinStockLevel)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	_, uc := productFixture(t)
	ctx := context.Background()
	negativo := int64(-1)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "", WarehouseID: "w-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el nombre es obligatorio")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", WarehouseID: "w-1", MinStockLevel: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el umbral no puede ser negativo")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", WarehouseID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la bodega principal debe existir")
}

func TestGetProduct_ReadThroughCache(t *testing.T) {
	repo, uc := productFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Perno", WarehouseID: "w-1"})
	require.NoError(t, err)

	// Primera lectura puebla el cache.
	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Aunque el repositorio "pierda" el producto, la lectura siguiente sale del cache.
	delete(repo.byID, created.ID)
	got, err = uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "dentro del TTL el detalle se sirve desde el cache")
	assert.Equal(t, created.ID, got.ID)
}

func TestGetProduct_Inexistente(t *testing.T) {
	_, uc := productFixture(t)
	got, err := uc.GetByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, got)
}
