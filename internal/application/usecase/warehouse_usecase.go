package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// WarehouseUseCase casos de uso CRUD para bodegas, con cache read-through del detalle.
type WarehouseUseCase struct {
	repo      repository.WarehouseRepository
	cache     inventory.StockCache
	entityTTL time.Duration
	log       *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	repo repository.WarehouseRepository,
	cache inventory.StockCache,
	entityTTL time.Duration,
	log *logger.Logger,
) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, cache: cache, entityTTL: entityTTL, log: log}
}

// Create crea una bodega. Nombre duplicado devuelve ErrDuplicate (constraint único).
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega (cache de entidades primero). Devuelve nil si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	if payload, found, err := uc.cache.GetEntity(ctx, inventory.CacheKindWarehouse, id); err == nil && found {
		var cached dto.WarehouseResponse
		if json.Unmarshal(payload, &cached) == nil {
			return &cached, nil
		}
	}

	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	out := toWarehouseResponse(warehouse)

	if payload, err := json.Marshal(out); err == nil {
		if err := uc.cache.PutEntity(ctx, inventory.CacheKindWarehouse, id, payload, uc.entityTTL); err != nil {
			uc.log.Warn().Err(err).Str("warehouse_id", id).Msg("no se pudo cachear el detalle de la bodega")
		}
	}
	return out, nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items:     items,
		Page:      page.Page,
		Limit:     page.Limit,
		Total:     total,
		PageCount: dto.PageCount(total, page.Limit),
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
