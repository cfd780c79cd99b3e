package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago aceptado
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodCash       PaymentMethod = "CASH"
)

// Payment representa un pago aplicado a una venta
type Payment struct {
	ID           uuid.UUID       `json:"id"`
	SaleID       uuid.UUID       `json:"sale_id"`
	Method       PaymentMethod   `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	Installments int             `json:"installments"`
}

// NewPayment crea un pago validado; installments en cero se asume 1
func NewPayment(method PaymentMethod, amount decimal.Decimal, installments int) (*Payment, error) {
	switch method {
	case PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodCash:
	default:
		return nil, ErrInvalidPaymentMethod
	}

	if amount.LessThan(decimal.Zero) {
		return nil, ErrInvalidPaymentAmount
	}

	if installments == 0 {
		installments = 1
	}
	if installments < 1 {
		return nil, ErrInvalidInstallments
	}

	return &Payment{
		ID:           uuid.New(),
		Method:       method,
		Amount:       amount,
		Installments: installments,
	}, nil
}
