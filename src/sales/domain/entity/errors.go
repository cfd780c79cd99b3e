package entity

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrClientIDRequired     = errors.New("client_id is required")
	ErrSaleMustHaveItems    = errors.New("sale must have at least one item")
	ErrSaleMustHavePayments = errors.New("sale must have at least one payment")
	ErrInvalidQuantity      = errors.New("quantity must be greater than 0")
	ErrInvalidPrice         = errors.New("unit_price must be greater than or equal to 0")
	ErrInvalidDiscount      = errors.New("discount must be greater than or equal to 0")
	ErrItemWithoutReference = errors.New("item requires a product_id or a custom_name")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than or equal to 0")
	ErrInvalidInstallments  = errors.New("installments must be greater than or equal to 1")

	ErrSaleNotFound   = errors.New("sale not found")
	ErrClientNotFound = errors.New("client not found")

	// Errores de transición del ciclo de vida
	ErrApprovalPending      = errors.New("sale has items pending approval")
	ErrNoApprovalPending    = errors.New("sale has no approval pending")
	ErrSaleAlreadyDelivered = errors.New("sale was already delivered")
	ErrSaleAlreadyCancelled = errors.New("sale was already cancelled")
)

// PaymentMismatchError indica que la suma de pagos no concilia con el
// total de la orden dentro del epsilon de 0.01
type PaymentMismatchError struct {
	OrderTotal    decimal.Decimal
	PaymentsTotal decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("payments total %s does not reconcile with order total %s",
		e.PaymentsTotal.StringFixed(2), e.OrderTotal.StringFixed(2))
}

// IsPaymentMismatch indica si err es un rechazo por pagos sin conciliar
func IsPaymentMismatch(err error) bool {
	var target *PaymentMismatchError
	return errors.As(err, &target)
}
