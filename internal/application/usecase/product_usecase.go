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

// ProductUseCase casos de uso CRUD para productos, con cache read-through del detalle.
type ProductUseCase struct {
	repo          repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	cache         inventory.StockCache
	entityTTL     time.Duration
	log           *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	cache inventory.StockCache,
	entityTTL time.Duration,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		repo:          repo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
		entityTTL:     entityTTL,
		log:           log,
	}
}

// Create crea un producto. El umbral mínimo por defecto es 10; la bodega principal
// debe existir. SKU duplicado devuelve ErrDuplicate (constraint único en BD).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	minLevel := int64(entity.DefaultMinStockLevel)
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		minLevel = *in.MinStockLevel
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		SKU:             in.SKU,
		MinStockLevel:   minLevel,
		HomeWarehouseID: in.WarehouseID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto, primero del cache de entidades y si no de la BD
// (poblando el cache con TTL). Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if payload, found, err := uc.cache.GetEntity(ctx, inventory.CacheKindProduct, id); err == nil && found {
		var cached dto.ProductResponse
		if json.Unmarshal(payload, &cached) == nil {
			return &cached, nil
		}
	}

	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)

	if payload, err := json.Marshal(out); err == nil {
		if err := uc.cache.PutEntity(ctx, inventory.CacheKindProduct, id, payload, uc.entityTTL); err != nil {
			uc.log.Warn().Err(err).Str("product_id", id).Msg("no se pudo cachear el detalle del producto")
		}
	}
	return out, nil
}

// List lista productos con paginación; warehouseID filtra por bodega principal.
func (uc *ProductUseCase) List(ctx context.Context, warehouseID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(warehouseID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:     items,
		Page:      page.Page,
		Limit:     page.Limit,
		Total:     total,
		PageCount: dto.PageCount(total, page.Limit),
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		MinStockLevel: p.MinStockLevel,
		WarehouseID:   p.HomeWarehouseID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
