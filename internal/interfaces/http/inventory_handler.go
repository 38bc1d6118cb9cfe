package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// InventoryHandler maneja movimientos de stock, transferencias, consultas de saldo
// y alertas de stock bajo.
type InventoryHandler struct {
	record   *inventory.RecordMovementUseCase
	transfer *inventory.TransferUseCase
	query    *inventory.StockQueryUseCase
	alerts   *inventory.AlertsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	record *inventory.RecordMovementUseCase,
	transfer *inventory.TransferUseCase,
	query *inventory.StockQueryUseCase,
	alerts *inventory.AlertsUseCase,
) *InventoryHandler {
	return &InventoryHandler{record: record, transfer: transfer, query: query, alerts: alerts}
}

// RegisterMovement godoc
// @Summary      Registrar entrada o salida de stock
// @Description  kind=addition suma al saldo de la bodega; kind=removal resta y falla con
// @Description  INSUFFICIENT_STOCK si no alcanza. El movimiento queda en el ledger inmutable.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, warehouse_id, kind, quantity > 0"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.record.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:                     movement.ID,
		ProductID:              movement.ProductID,
		SourceWarehouseID:      movement.SourceWarehouseID,
		DestinationWarehouseID: movement.DestinationWarehouseID,
		Quantity:               movement.Quantity,
		Kind:                   movement.Kind,
		Timestamp:              movement.Timestamp,
	})
}

// Transfer godoc
// @Summary      Transferir stock entre bodegas
// @Description  Todo o nada: valida, verifica saldo con bloqueo de fila, aplica y agrega
// @Description  exactamente un movimiento transfer. Saldo insuficiente devuelve
// @Description  INSUFFICIENT_STOCK con available y requested.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, source_warehouse_id, destination_warehouse_id, quantity > 0"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.transfer.Transfer(c.Context(), inventory.TransferInput{
		ProductID:         in.ProductID,
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
		Quantity:          in.Quantity,
		UserID:            GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:                     movement.ID,
		ProductID:              movement.ProductID,
		SourceWarehouseID:      movement.SourceWarehouseID,
		DestinationWarehouseID: movement.DestinationWarehouseID,
		Quantity:               movement.Quantity,
		Kind:                   movement.Kind,
		Timestamp:              movement.Timestamp,
	})
}

// GetProductStock godoc
// @Summary      Stock total de un producto
// @Description  Suma entre todas las bodegas; cache primero, ledger como fallback.
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) GetProductStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	stock, err := h.query.GetProductStock(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Stock: stock})
}

// GetWarehouseProductStock godoc
// @Summary      Stock de un producto en una bodega
// @Tags         inventory
// @Produce      json
// @Param        id         path      string  true  "ID de la bodega"
// @Param        productId  path      string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/warehouses/{id}/products/{productId}/stock [get]
func (h *InventoryHandler) GetWarehouseProductStock(c *fiber.Ctx) error {
	warehouseID := c.Params("id")
	productID := c.Params("productId")
	stock, err := h.query.GetWarehouseProductStock(c.Context(), warehouseID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Stock: stock})
}

// ListProductMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        page   query  int     false  "página (default 1)"
// @Param        limit  query  int     false  "tamaño de página (default 10)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListProductMovements(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", dto.DefaultPageSize),
	}
	out, err := h.query.ListProductMovements(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLowStockAlerts godoc
// @Summary      Productos bajo su umbral de stock mínimo
// @Description  Ordenados por déficit descendente. Si el cache no responde, recalcula
// @Description  desde el ledger.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertDTO
// @Security     BearerAuth
// @Router       /api/alerts [get]
func (h *InventoryHandler) ListLowStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.alerts.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alerts)
}
