package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus representa el estado de una venta
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusDelivered SaleStatus = "DELIVERED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// ReconciliationEpsilon tolerancia al comparar la suma de pagos contra
// el total de la orden (0.01 de la moneda)
var ReconciliationEpsilon = decimal.NewFromFloat(0.01)

// Sale representa una venta (Aggregate Root). Es dueña exclusiva de sus
// items y pagos; los productos solo se referencian a través de reservas
// registradas en el ledger de inventario. Una venta nunca se borra:
// la cancelación es un estado, no una eliminación.
type Sale struct {
	ID               uuid.UUID       `json:"id"`
	Sequence         int64           `json:"sequence"`
	PublicID         string          `json:"public_id"`
	ClientID         uuid.UUID       `json:"client_id"`
	Items            []SaleItem      `json:"items"`
	Payments         []Payment       `json:"payments"`
	Discount         decimal.Decimal `json:"discount"`
	Value            decimal.Decimal `json:"value"`
	Status           SaleStatus      `json:"status"`
	RequiresApproval bool            `json:"requires_approval"`
	DeliveryDate     *time.Time      `json:"delivery_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewSale crea una venta validada con sus totales calculados.
// Sequence y PublicID los asigna el coordinador con el secuenciador
// antes de persistir.
func NewSale(clientID uuid.UUID, items []SaleItem, payments []Payment, discount decimal.Decimal) (*Sale, error) {
	if clientID == uuid.Nil {
		return nil, ErrClientIDRequired
	}
	if len(items) == 0 {
		return nil, ErrSaleMustHaveItems
	}
	if len(payments) == 0 {
		return nil, ErrSaleMustHavePayments
	}
	if discount.LessThan(decimal.Zero) {
		return nil, ErrInvalidDiscount
	}

	saleID := uuid.New()
	now := time.Now()

	// Asignar sale_id a items y pagos
	for i := range items {
		items[i].SaleID = saleID
	}
	for i := range payments {
		payments[i].SaleID = saleID
	}

	sale := &Sale{
		ID:        saleID,
		ClientID:  clientID,
		Items:     items,
		Payments:  payments,
		Discount:  discount,
		Status:    SaleStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sale.Value = sale.ItemsTotal().Sub(discount)
	sale.RequiresApproval = sale.anyItemPendingApproval()

	if err := sale.ReconcilePayments(); err != nil {
		return nil, err
	}

	return sale, nil
}

// ItemsTotal retorna la suma de subtotales de los items
func (s *Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].Subtotal())
	}
	return total
}

// PaymentsTotal retorna la suma de los pagos
func (s *Sale) PaymentsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Payments {
		total = total.Add(s.Payments[i].Amount)
	}
	return total
}

// ReconcilePayments valida que la suma de pagos iguale el total de la
// orden dentro del epsilon de 0.01
func (s *Sale) ReconcilePayments() error {
	paid := s.PaymentsTotal()
	if paid.Sub(s.Value).Abs().GreaterThan(ReconciliationEpsilon) {
		return &PaymentMismatchError{
			OrderTotal:    s.Value,
			PaymentsTotal: paid,
		}
	}
	return nil
}

// IsTerminal indica si la venta alcanzó un estado final
func (s *Sale) IsTerminal() bool {
	return s.Status == SaleStatusDelivered || s.Status == SaleStatusCancelled
}

// CanEdit valida que la venta admita una edición completa
func (s *Sale) CanEdit() error {
	switch s.Status {
	case SaleStatusDelivered:
		return ErrSaleAlreadyDelivered
	case SaleStatusCancelled:
		return ErrSaleAlreadyCancelled
	}
	return nil
}

// ConfirmDelivery transiciona la venta a DELIVERED. Requiere que no
// queden items pendientes de aprobación. La re-confirmación de una
// venta ya entregada la resuelve el caso de uso como no-op idempotente
// antes de llegar acá.
func (s *Sale) ConfirmDelivery(at time.Time) error {
	switch s.Status {
	case SaleStatusDelivered:
		return ErrSaleAlreadyDelivered
	case SaleStatusCancelled:
		return ErrSaleAlreadyCancelled
	}
	if s.RequiresApproval {
		return ErrApprovalPending
	}

	s.Status = SaleStatusDelivered
	s.DeliveryDate = &at
	s.UpdatedAt = at
	return nil
}

// Cancel transiciona la venta a CANCELLED
func (s *Sale) Cancel() error {
	switch s.Status {
	case SaleStatusDelivered:
		return ErrSaleAlreadyDelivered
	case SaleStatusCancelled:
		return ErrSaleAlreadyCancelled
	}

	s.Status = SaleStatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// Approve limpia la marca de aprobación de la venta y de todos sus items
func (s *Sale) Approve() error {
	if s.IsTerminal() {
		if s.Status == SaleStatusDelivered {
			return ErrSaleAlreadyDelivered
		}
		return ErrSaleAlreadyCancelled
	}
	if !s.RequiresApproval {
		return ErrNoApprovalPending
	}

	for i := range s.Items {
		s.Items[i].RequiresApproval = false
	}
	s.RequiresApproval = false
	s.UpdatedAt = time.Now()
	return nil
}

// ReplaceContents reemplaza items y pagos en una edición completa,
// recalculando totales y la marca de aprobación
func (s *Sale) ReplaceContents(items []SaleItem, payments []Payment, discount decimal.Decimal) error {
	if len(items) == 0 {
		return ErrSaleMustHaveItems
	}
	if len(payments) == 0 {
		return ErrSaleMustHavePayments
	}
	if discount.LessThan(decimal.Zero) {
		return ErrInvalidDiscount
	}

	for i := range items {
		items[i].SaleID = s.ID
	}
	for i := range payments {
		payments[i].SaleID = s.ID
	}

	s.Items = items
	s.Payments = payments
	s.Discount = discount
	s.Value = s.ItemsTotal().Sub(discount)
	s.RequiresApproval = s.anyItemPendingApproval()
	s.UpdatedAt = time.Now()

	return s.ReconcilePayments()
}

// CatalogQuantities agrupa las cantidades por producto de los items de
// catálogo (los items a medida no tienen efecto de inventario). Los
// deltas por producto se consolidan antes de tocar el ledger: una sola
// operación por producto por transición.
func (s *Sale) CatalogQuantities() map[uuid.UUID]int {
	quantities := make(map[uuid.UUID]int)
	for i := range s.Items {
		if s.Items[i].ProductID != nil {
			quantities[*s.Items[i].ProductID] += s.Items[i].Quantity
		}
	}
	return quantities
}

func (s *Sale) anyItemPendingApproval() bool {
	for i := range s.Items {
		if s.Items[i].RequiresApproval {
			return true
		}
	}
	return false
}
