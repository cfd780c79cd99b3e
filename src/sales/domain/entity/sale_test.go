package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func catalogItem(t *testing.T, productID uuid.UUID, qty int, price string) SaleItem {
	t.Helper()
	item, err := NewCatalogItem(productID, qty, decimal.RequireFromString(price), decimal.Zero)
	require.NoError(t, err)
	return *item
}

func customItem(t *testing.T, name string, qty int, price string) SaleItem {
	t.Helper()
	item, err := NewCustomItem(name, qty, decimal.RequireFromString(price), decimal.Zero)
	require.NoError(t, err)
	return *item
}

func payment(t *testing.T, amount string) Payment {
	t.Helper()
	p, err := NewPayment(PaymentMethodPix, decimal.RequireFromString(amount), 1)
	require.NoError(t, err)
	return *p
}

func TestNewSale_Totals(t *testing.T) {
	productID := uuid.New()
	item, err := NewCatalogItem(productID, 3, decimal.RequireFromString("10.50"), decimal.RequireFromString("1.50"))
	require.NoError(t, err)

	// 3 * 10.50 - 1.50 = 30.00, menos descuento global 5.00 = 25.00
	sale, err := NewSale(uuid.New(), []SaleItem{*item}, []Payment{payment(t, "25.00")}, decimal.RequireFromString("5.00"))
	require.NoError(t, err)

	require.True(t, sale.ItemsTotal().Equal(decimal.RequireFromString("30.00")))
	require.True(t, sale.Value.Equal(decimal.RequireFromString("25.00")))
	require.Equal(t, SaleStatusPending, sale.Status)
	require.False(t, sale.RequiresApproval)
}

func TestNewSale_PaymentReconciliation(t *testing.T) {
	productID := uuid.New()
	items := []SaleItem{catalogItem(t, productID, 1, "100.00")}

	// Diferencia exactamente en el epsilon: concilia
	_, err := NewSale(uuid.New(), items, []Payment{payment(t, "99.99")}, decimal.Zero)
	require.NoError(t, err)

	// Diferencia mayor al epsilon: rechaza
	items = []SaleItem{catalogItem(t, productID, 1, "100.00")}
	_, err = NewSale(uuid.New(), items, []Payment{payment(t, "99.97")}, decimal.Zero)
	require.Error(t, err)
	require.True(t, IsPaymentMismatch(err))
}

func TestNewSale_SplitPayments(t *testing.T) {
	productID := uuid.New()
	items := []SaleItem{catalogItem(t, productID, 2, "50.00")}

	sale, err := NewSale(uuid.New(), items, []Payment{payment(t, "60.00"), payment(t, "40.00")}, decimal.Zero)
	require.NoError(t, err)
	require.True(t, sale.PaymentsTotal().Equal(decimal.RequireFromString("100.00")))
}

func TestNewSale_CustomItemRequiresApproval(t *testing.T) {
	items := []SaleItem{
		catalogItem(t, uuid.New(), 1, "10.00"),
		customItem(t, "almohadón a medida", 1, "40.00"),
	}

	sale, err := NewSale(uuid.New(), items, []Payment{payment(t, "50.00")}, decimal.Zero)
	require.NoError(t, err)
	require.True(t, sale.RequiresApproval)

	// Sin aprobación no hay entrega
	err = sale.ConfirmDelivery(time.Now())
	require.ErrorIs(t, err, ErrApprovalPending)

	require.NoError(t, sale.Approve())
	require.False(t, sale.RequiresApproval)
	for _, item := range sale.Items {
		require.False(t, item.RequiresApproval)
	}

	require.NoError(t, sale.ConfirmDelivery(time.Now()))
	require.Equal(t, SaleStatusDelivered, sale.Status)
	require.NotNil(t, sale.DeliveryDate)
}

func TestSale_ApproveWithoutPending(t *testing.T) {
	sale, err := NewSale(uuid.New(),
		[]SaleItem{catalogItem(t, uuid.New(), 1, "10.00")},
		[]Payment{payment(t, "10.00")}, decimal.Zero)
	require.NoError(t, err)

	require.ErrorIs(t, sale.Approve(), ErrNoApprovalPending)
}

func TestSale_TerminalTransitions(t *testing.T) {
	sale, err := NewSale(uuid.New(),
		[]SaleItem{catalogItem(t, uuid.New(), 1, "10.00")},
		[]Payment{payment(t, "10.00")}, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, sale.ConfirmDelivery(time.Now()))

	// Una venta entregada no se cancela ni se vuelve a entregar
	require.ErrorIs(t, sale.Cancel(), ErrSaleAlreadyDelivered)
	require.ErrorIs(t, sale.ConfirmDelivery(time.Now()), ErrSaleAlreadyDelivered)
	require.ErrorIs(t, sale.CanEdit(), ErrSaleAlreadyDelivered)
}

func TestSale_CancelledIsTerminal(t *testing.T) {
	sale, err := NewSale(uuid.New(),
		[]SaleItem{catalogItem(t, uuid.New(), 1, "10.00")},
		[]Payment{payment(t, "10.00")}, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, sale.Cancel())
	require.ErrorIs(t, sale.ConfirmDelivery(time.Now()), ErrSaleAlreadyCancelled)
	require.ErrorIs(t, sale.CanEdit(), ErrSaleAlreadyCancelled)
	require.True(t, sale.IsTerminal())
}

func TestSale_CatalogQuantitiesBatchesPerProduct(t *testing.T) {
	productID := uuid.New()
	items := []SaleItem{
		catalogItem(t, productID, 2, "10.00"),
		catalogItem(t, productID, 3, "10.00"),
		customItem(t, "bordado", 1, "5.00"),
	}

	sale, err := NewSale(uuid.New(), items, []Payment{payment(t, "55.00")}, decimal.Zero)
	require.NoError(t, err)

	quantities := sale.CatalogQuantities()
	require.Len(t, quantities, 1)
	require.Equal(t, 5, quantities[productID])
}

func TestSale_ReplaceContentsRecalculates(t *testing.T) {
	productID := uuid.New()
	sale, err := NewSale(uuid.New(),
		[]SaleItem{catalogItem(t, productID, 2, "10.00")},
		[]Payment{payment(t, "20.00")}, decimal.Zero)
	require.NoError(t, err)

	newItems := []SaleItem{customItem(t, "cortina a medida", 1, "80.00")}
	err = sale.ReplaceContents(newItems, []Payment{payment(t, "80.00")}, decimal.Zero)
	require.NoError(t, err)

	require.True(t, sale.Value.Equal(decimal.RequireFromString("80.00")))
	require.True(t, sale.RequiresApproval)
	require.Equal(t, sale.ID, sale.Items[0].SaleID)
}

func TestSale_ReplaceContentsRejectsMismatch(t *testing.T) {
	productID := uuid.New()
	sale, err := NewSale(uuid.New(),
		[]SaleItem{catalogItem(t, productID, 2, "10.00")},
		[]Payment{payment(t, "20.00")}, decimal.Zero)
	require.NoError(t, err)

	err = sale.ReplaceContents(
		[]SaleItem{catalogItem(t, productID, 1, "10.00")},
		[]Payment{payment(t, "20.00")}, decimal.Zero)
	require.True(t, IsPaymentMismatch(err))
}

func TestNewPayment_InstallmentsDefault(t *testing.T) {
	p, err := NewPayment(PaymentMethodCreditCard, decimal.RequireFromString("30.00"), 0)
	require.NoError(t, err)
	require.Equal(t, 1, p.Installments)

	_, err = NewPayment(PaymentMethodCreditCard, decimal.RequireFromString("30.00"), -2)
	require.ErrorIs(t, err, ErrInvalidInstallments)

	_, err = NewPayment("TRANSFER", decimal.RequireFromString("30.00"), 1)
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestNewSaleItem_Validation(t *testing.T) {
	_, err := NewCatalogItem(uuid.Nil, 1, decimal.Zero, decimal.Zero)
	require.ErrorIs(t, err, ErrItemWithoutReference)

	_, err = NewCustomItem("", 1, decimal.Zero, decimal.Zero)
	require.ErrorIs(t, err, ErrItemWithoutReference)

	_, err = NewCatalogItem(uuid.New(), 0, decimal.Zero, decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewCatalogItem(uuid.New(), 1, decimal.RequireFromString("-1"), decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidPrice)
}
