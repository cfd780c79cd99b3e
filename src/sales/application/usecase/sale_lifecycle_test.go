package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	inventoryEntity "sales/src/inventory/domain/entity"
	"sales/src/sales/application/request"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/sales/infrastructure/sequencer"
	"sales/src/shared/infrastructure/memory"
)

// testEnv arma el módulo completo sobre el store en memoria
type testEnv struct {
	store     *memory.Store
	client    *entity.Client
	product   *inventoryEntity.Product
	createUC  *CreateSaleUseCase
	updateUC  *UpdateSaleUseCase
	confirmUC *ConfirmDeliveryUseCase
	cancelUC  *CancelSaleUseCase
	approveUC *ApproveSaleUseCase
	listUC    *ListSalesUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	logger := zaptest.NewLogger(t)
	seq := sequencer.NewMemorySequencer("V")
	builder := NewSaleBuilder(store, store)

	client := &entity.Client{ID: uuid.New(), Name: "María Dos Santos"}
	store.SeedClient(client)

	product, err := inventoryEntity.NewProduct("Juego de sábanas", 5)
	require.NoError(t, err)
	store.SeedProduct(product)

	return &testEnv{
		store:     store,
		client:    client,
		product:   product,
		createUC:  NewCreateSaleUseCase(builder, seq, store, store, store, logger),
		updateUC:  NewUpdateSaleUseCase(builder, store, store, store, logger),
		confirmUC: NewConfirmDeliveryUseCase(store, store, store, nil, logger),
		cancelUC:  NewCancelSaleUseCase(store, store, store, nil, logger),
		approveUC: NewApproveSaleUseCase(store, store, logger),
		listUC:    NewListSalesUseCase(store, store),
	}
}

func (e *testEnv) stock(t *testing.T, productID uuid.UUID) (available, reserved int) {
	t.Helper()
	products, err := e.store.GetProducts(context.Background(), []uuid.UUID{productID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	return products[0].AvailableQuantity, products[0].ReservedQuantity
}

func (e *testEnv) createRequest(qty int, price string) *request.CreateSaleRequest {
	unitPrice := decimal.RequireFromString(price)
	total := unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	return &request.CreateSaleRequest{
		ClientID: e.client.ID,
		Items: []request.SaleItemRequest{
			{ProductID: &e.product.ID, Quantity: qty, UnitPrice: unitPrice},
		},
		Payments: []request.SalePaymentRequest{
			{Method: "PIX", Amount: total},
		},
	}
}

func TestCreateSale_ReservesStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(2, "10.00"))
	require.NoError(t, err)

	require.Equal(t, int64(1), sale.Sequence)
	require.Equal(t, "V0001", sale.PublicID)
	require.Equal(t, entity.SaleStatusPending, sale.Status)

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 3, available)
	require.Equal(t, 2, reserved)
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.createUC.Execute(ctx, env.createRequest(6, "10.00"))
	require.Error(t, err)
	require.True(t, inventoryEntity.IsInsufficientStock(err))
	// El rechazo nombra al producto
	require.Contains(t, err.Error(), "Juego de sábanas")

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 5, available)
	require.Equal(t, 0, reserved)

	// Nada quedó persistido
	resp, err := env.listUC.Execute(ctx, port.SaleQuery{})
	require.NoError(t, err)
	require.Equal(t, 0, resp.TotalCount)
}

func TestCreateSale_ClientNotFound(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(1, "10.00")
	req.ClientID = uuid.New()

	_, err := env.createUC.Execute(context.Background(), req)
	require.ErrorIs(t, err, entity.ErrClientNotFound)
}

func TestCreateSale_ProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(1, "10.00")
	ghost := uuid.New()
	req.Items[0].ProductID = &ghost

	_, err := env.createUC.Execute(context.Background(), req)
	require.ErrorIs(t, err, inventoryEntity.ErrProductNotFound)
}

func TestCreateSale_PaymentMismatch(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(2, "10.00")
	req.Payments[0].Amount = decimal.RequireFromString("15.00")

	_, err := env.createUC.Execute(context.Background(), req)
	require.True(t, entity.IsPaymentMismatch(err))

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 5, available)
	require.Equal(t, 0, reserved)
}

func TestUpdateSale_AdjustsReservationDelta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(2, "10.00"))
	require.NoError(t, err)

	// De 2 a 1: libera 2, reserva 1
	updated, err := env.updateUC.Execute(ctx, sale.ID, &request.UpdateSaleRequest{
		Items: []request.SaleItemRequest{
			{ProductID: &env.product.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
		Payments: []request.SalePaymentRequest{
			{Method: "CASH", Amount: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)
	require.True(t, updated.Value.Equal(decimal.RequireFromString("10.00")))

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 4, available)
	require.Equal(t, 1, reserved)
}

func TestUpdateSale_GrowWithinReleasedStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(4, "10.00"))
	require.NoError(t, err)

	// Disponible quedó en 1, pero la edición a 5 entra porque primero se
	// liberan las 4 reservadas en la misma transacción
	_, err = env.updateUC.Execute(ctx, sale.ID, &request.UpdateSaleRequest{
		Items: []request.SaleItemRequest{
			{ProductID: &env.product.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("10.00")},
		},
		Payments: []request.SalePaymentRequest{
			{Method: "PIX", Amount: decimal.RequireFromString("50.00")},
		},
	})
	require.NoError(t, err)

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 0, available)
	require.Equal(t, 5, reserved)
}

func TestUpdateSale_RollbackOnInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(3, "10.00"))
	require.NoError(t, err)

	// 3 liberadas + 2 disponibles no alcanzan para 6: todo revierte
	_, err = env.updateUC.Execute(ctx, sale.ID, &request.UpdateSaleRequest{
		Items: []request.SaleItemRequest{
			{ProductID: &env.product.ID, Quantity: 6, UnitPrice: decimal.RequireFromString("10.00")},
		},
		Payments: []request.SalePaymentRequest{
			{Method: "PIX", Amount: decimal.RequireFromString("60.00")},
		},
	})
	require.True(t, inventoryEntity.IsInsufficientStock(err))

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 2, available)
	require.Equal(t, 3, reserved)

	unchanged, err := env.store.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, unchanged.Items, 1)
	require.Equal(t, 3, unchanged.Items[0].Quantity)
}

func TestUpdateSale_MultiProductRollback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	scarce, err := inventoryEntity.NewProduct("Manta tejida", 1)
	require.NoError(t, err)
	env.store.SeedProduct(scarce)

	sale, err := env.createUC.Execute(ctx, env.createRequest(2, "10.00"))
	require.NoError(t, err)

	// El segundo producto no alcanza: la reserva del primero también revierte
	_, err = env.updateUC.Execute(ctx, sale.ID, &request.UpdateSaleRequest{
		Items: []request.SaleItemRequest{
			{ProductID: &env.product.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductID: &scarce.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")},
		},
		Payments: []request.SalePaymentRequest{
			{Method: "PIX", Amount: decimal.RequireFromString("50.00")},
		},
	})
	require.True(t, inventoryEntity.IsInsufficientStock(err))

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 3, available)
	require.Equal(t, 2, reserved)

	scarceAvailable, scarceReserved := env.stock(t, scarce.ID)
	require.Equal(t, 1, scarceAvailable)
	require.Equal(t, 0, scarceReserved)
}

func TestConfirmDelivery_ConsumesReservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(2, "10.00"))
	require.NoError(t, err)

	delivered, err := env.confirmUC.Execute(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SaleStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveryDate)

	// El consumo no devuelve al disponible
	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 3, available)
	require.Equal(t, 0, reserved)

	// Reconfirmar es un no-op
	again, err := env.confirmUC.Execute(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SaleStatusDelivered, again.Status)

	available, reserved = env.stock(t, env.product.ID)
	require.Equal(t, 3, available)
	require.Equal(t, 0, reserved)
}

func TestConfirmDelivery_ApprovalGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := env.createRequest(1, "10.00")
	req.Items = append(req.Items, request.SaleItemRequest{
		CustomName: "Funda bordada",
		Quantity:   1,
		UnitPrice:  decimal.RequireFromString("30.00"),
	})
	req.Payments[0].Amount = decimal.RequireFromString("40.00")

	sale, err := env.createUC.Execute(ctx, req)
	require.NoError(t, err)
	require.True(t, sale.RequiresApproval)

	_, err = env.confirmUC.Execute(ctx, sale.ID)
	require.ErrorIs(t, err, entity.ErrApprovalPending)

	_, err = env.approveUC.Execute(ctx, sale.ID)
	require.NoError(t, err)

	delivered, err := env.confirmUC.Execute(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SaleStatusDelivered, delivered.Status)
}

func TestCancelSale_RestoresStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(2, "10.00"))
	require.NoError(t, err)

	cancelled, err := env.cancelUC.Execute(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SaleStatusCancelled, cancelled.Status)

	available, reserved := env.stock(t, env.product.ID)
	require.Equal(t, 5, available)
	require.Equal(t, 0, reserved)

	// Recancelar es un no-op, el stock no se libera dos veces
	_, err = env.cancelUC.Execute(ctx, sale.ID)
	require.NoError(t, err)

	available, reserved = env.stock(t, env.product.ID)
	require.Equal(t, 5, available)
	require.Equal(t, 0, reserved)
}

func TestCancelSale_DeliveredIsFinal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(1, "10.00"))
	require.NoError(t, err)

	_, err = env.confirmUC.Execute(ctx, sale.ID)
	require.NoError(t, err)

	_, err = env.cancelUC.Execute(ctx, sale.ID)
	require.ErrorIs(t, err, entity.ErrSaleAlreadyDelivered)

	_, err = env.updateUC.Execute(ctx, sale.ID, &request.UpdateSaleRequest{
		Items: []request.SaleItemRequest{
			{ProductID: &env.product.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
		Payments: []request.SalePaymentRequest{
			{Method: "PIX", Amount: decimal.RequireFromString("10.00")},
		},
	})
	require.ErrorIs(t, err, entity.ErrSaleAlreadyDelivered)
}

func TestListSales_FiltersAndSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.createUC.Execute(ctx, env.createRequest(1, "10.00"))
	require.NoError(t, err)
	second, err := env.createUC.Execute(ctx, env.createRequest(1, "10.00"))
	require.NoError(t, err)

	_, err = env.cancelUC.Execute(ctx, first.ID)
	require.NoError(t, err)

	// Por estado
	resp, err := env.listUC.Execute(ctx, port.SaleQuery{Status: entity.SaleStatusPending})
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalCount)
	require.Equal(t, second.PublicID, resp.Items[0].PublicID)
	require.Equal(t, env.client.Name, resp.Items[0].Client.Name)

	// Texto libre sobre el id público
	resp, err = env.listUC.Execute(ctx, port.SaleQuery{Search: first.PublicID})
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalCount)

	// Texto libre sobre el nombre del cliente
	resp, err = env.listUC.Execute(ctx, port.SaleQuery{Search: "maría"})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)
}

func TestGetSale_NotFound(t *testing.T) {
	env := newTestEnv(t)
	getUC := NewGetSaleUseCase(env.store, env.store)

	_, err := getUC.Execute(context.Background(), uuid.New())
	require.ErrorIs(t, err, entity.ErrSaleNotFound)
}

func TestListSales_ToDateCoversWholeDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sale, err := env.createUC.Execute(ctx, env.createRequest(1, "10.00"))
	require.NoError(t, err)

	// "to" llega como fecha (medianoche); el filtro cubre el día entero
	day := time.Date(sale.CreatedAt.Year(), sale.CreatedAt.Month(), sale.CreatedAt.Day(),
		0, 0, 0, 0, sale.CreatedAt.Location())
	resp, err := env.listUC.Execute(ctx, port.SaleQuery{To: &day})
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalCount)

	previous := day.AddDate(0, 0, -1)
	resp, err = env.listUC.Execute(ctx, port.SaleQuery{To: &previous})
	require.NoError(t, err)
	require.Equal(t, 0, resp.TotalCount)
}
