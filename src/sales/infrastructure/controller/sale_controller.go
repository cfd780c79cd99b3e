package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	inventoryEntity "sales/src/inventory/domain/entity"
	"sales/src/sales/application/request"
	"sales/src/sales/application/response"
	"sales/src/sales/application/usecase"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/infrastructure/middleware"
)

// SaleController maneja las peticiones HTTP para ventas
type SaleController struct {
	createSaleUC      *usecase.CreateSaleUseCase
	updateSaleUC      *usecase.UpdateSaleUseCase
	confirmDeliveryUC *usecase.ConfirmDeliveryUseCase
	cancelSaleUC      *usecase.CancelSaleUseCase
	approveSaleUC     *usecase.ApproveSaleUseCase
	getSaleUC         *usecase.GetSaleUseCase
	listSalesUC       *usecase.ListSalesUseCase
	clients           port.ClientDirectory
	logger            *zap.Logger
}

// NewSaleController crea una nueva instancia del controlador
func NewSaleController(
	createSaleUC *usecase.CreateSaleUseCase,
	updateSaleUC *usecase.UpdateSaleUseCase,
	confirmDeliveryUC *usecase.ConfirmDeliveryUseCase,
	cancelSaleUC *usecase.CancelSaleUseCase,
	approveSaleUC *usecase.ApproveSaleUseCase,
	getSaleUC *usecase.GetSaleUseCase,
	listSalesUC *usecase.ListSalesUseCase,
	clients port.ClientDirectory,
	logger *zap.Logger,
) *SaleController {
	return &SaleController{
		createSaleUC:      createSaleUC,
		updateSaleUC:      updateSaleUC,
		confirmDeliveryUC: confirmDeliveryUC,
		cancelSaleUC:      cancelSaleUC,
		approveSaleUC:     approveSaleUC,
		getSaleUC:         getSaleUC,
		listSalesUC:       listSalesUC,
		clients:           clients,
		logger:            logger,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SaleController) RegisterRoutes(router *gin.RouterGroup) {
	authenticated := middleware.RequireAuthenticated()
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)
	adminOrOperator := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleOperator)

	sales := router.Group("/sales")
	{
		sales.GET("", authenticated, c.ListSales)
		sales.GET("/:sale_id", authenticated, c.GetSale)
		sales.POST("", authenticated, c.CreateSale)
		sales.PUT("/:sale_id", adminOnly, c.UpdateSale)
		sales.POST("/:sale_id/confirm-delivery", adminOrOperator, c.ConfirmDelivery)
		sales.POST("/:sale_id/cancel", adminOnly, c.CancelSale)
		sales.POST("/:sale_id/approve", adminOnly, c.ApproveSale)
	}
}

// CreateSale maneja la creación de una venta
func (c *SaleController) CreateSale(ctx *gin.Context) {
	var req request.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sale, err := c.createSaleUC.Execute(ctx.Request.Context(), &req)
	if err != nil {
		c.respondError(ctx, "Error creating sale", err)
		return
	}

	ctx.JSON(http.StatusCreated, c.hydrate(ctx, sale))
}

// UpdateSale maneja la edición de una venta pendiente
func (c *SaleController) UpdateSale(ctx *gin.Context) {
	saleID, ok := c.parseSaleID(ctx)
	if !ok {
		return
	}

	var req request.UpdateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sale, err := c.updateSaleUC.Execute(ctx.Request.Context(), saleID, &req)
	if err != nil {
		c.respondError(ctx, "Error updating sale", err)
		return
	}

	ctx.JSON(http.StatusOK, c.hydrate(ctx, sale))
}

// ConfirmDelivery maneja la confirmación de entrega
func (c *SaleController) ConfirmDelivery(ctx *gin.Context) {
	saleID, ok := c.parseSaleID(ctx)
	if !ok {
		return
	}

	sale, err := c.confirmDeliveryUC.Execute(ctx.Request.Context(), saleID)
	if err != nil {
		c.respondError(ctx, "Error confirming delivery", err)
		return
	}

	ctx.JSON(http.StatusOK, c.hydrate(ctx, sale))
}

// CancelSale maneja la cancelación de una venta
func (c *SaleController) CancelSale(ctx *gin.Context) {
	saleID, ok := c.parseSaleID(ctx)
	if !ok {
		return
	}

	sale, err := c.cancelSaleUC.Execute(ctx.Request.Context(), saleID)
	if err != nil {
		c.respondError(ctx, "Error cancelling sale", err)
		return
	}

	ctx.JSON(http.StatusOK, c.hydrate(ctx, sale))
}

// ApproveSale maneja la aprobación de ítems personalizados
func (c *SaleController) ApproveSale(ctx *gin.Context) {
	saleID, ok := c.parseSaleID(ctx)
	if !ok {
		return
	}

	sale, err := c.approveSaleUC.Execute(ctx.Request.Context(), saleID)
	if err != nil {
		c.respondError(ctx, "Error approving sale", err)
		return
	}

	ctx.JSON(http.StatusOK, c.hydrate(ctx, sale))
}

// GetSale maneja la consulta de una venta
func (c *SaleController) GetSale(ctx *gin.Context) {
	saleID, ok := c.parseSaleID(ctx)
	if !ok {
		return
	}

	resp, err := c.getSaleUC.Execute(ctx.Request.Context(), saleID)
	if err != nil {
		c.respondError(ctx, "Error fetching sale", err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListSales maneja el listado de ventas con filtros y paginación
func (c *SaleController) ListSales(ctx *gin.Context) {
	query, err := c.buildQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := c.listSalesUC.Execute(ctx.Request.Context(), query)
	if err != nil {
		c.respondError(ctx, "Error listing sales", err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *SaleController) parseSaleID(ctx *gin.Context) (uuid.UUID, bool) {
	saleID, err := uuid.Parse(ctx.Param("sale_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale_id format"})
		return uuid.Nil, false
	}
	return saleID, true
}

func (c *SaleController) buildQuery(ctx *gin.Context) (port.SaleQuery, error) {
	query := port.SaleQuery{
		Search: ctx.Query("search"),
	}

	if status := ctx.Query("status"); status != "" {
		query.Status = entity.SaleStatus(status)
	}
	if clientID := ctx.Query("client_id"); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			return query, errors.New("invalid client_id format")
		}
		query.ClientID = &id
	}

	from, err := parseDateParam(ctx.Query("from"))
	if err != nil {
		return query, errors.New("invalid from date, expected YYYY-MM-DD")
	}
	query.From = from

	to, err := parseDateParam(ctx.Query("to"))
	if err != nil {
		return query, errors.New("invalid to date, expected YYYY-MM-DD")
	}
	query.To = to

	query.Page = intQueryParam(ctx, "page", 1)
	query.PageSize = intQueryParam(ctx, "page_size", 0)

	return query, nil
}

// hydrate arma la respuesta con los datos del cliente. Si el cliente no
// está, la respuesta sale con el id solo.
func (c *SaleController) hydrate(ctx *gin.Context, sale *entity.Sale) *response.SaleResponse {
	client, err := c.clients.GetClient(ctx.Request.Context(), sale.ClientID)
	if err != nil && !errors.Is(err, entity.ErrClientNotFound) {
		c.logger.Warn("failed to hydrate client",
			zap.String("client_id", sale.ClientID.String()),
			zap.Error(err),
		)
	}
	return response.NewSaleResponse(sale, client)
}

// respondError mapea errores de dominio a códigos HTTP
func (c *SaleController) respondError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrSaleNotFound),
		errors.Is(err, entity.ErrClientNotFound),
		errors.Is(err, inventoryEntity.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, port.ErrSequencerUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	case inventoryEntity.IsInsufficientStock(err),
		errors.Is(err, entity.ErrApprovalPending),
		errors.Is(err, entity.ErrNoApprovalPending),
		errors.Is(err, entity.ErrSaleAlreadyDelivered),
		errors.Is(err, entity.ErrSaleAlreadyCancelled),
		entity.IsPaymentMismatch(err),
		errors.Is(err, entity.ErrClientIDRequired),
		errors.Is(err, entity.ErrSaleMustHaveItems),
		errors.Is(err, entity.ErrSaleMustHavePayments),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrInvalidPrice),
		errors.Is(err, entity.ErrInvalidDiscount),
		errors.Is(err, entity.ErrItemWithoutReference),
		errors.Is(err, entity.ErrInvalidPaymentMethod),
		errors.Is(err, entity.ErrInvalidPaymentAmount),
		errors.Is(err, entity.ErrInvalidInstallments):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   msg,
			"details": err.Error(),
		})
	}
}
