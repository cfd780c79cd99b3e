package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sales/src/sales/domain/entity"
)

// SaleItemResponse representa un renglón en la respuesta
type SaleItemResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ProductID        *uuid.UUID      `json:"product_id,omitempty"`
	CustomName       string          `json:"custom_name,omitempty"`
	IsCustom         bool            `json:"is_custom"`
	RequiresApproval bool            `json:"requires_approval"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount         decimal.Decimal `json:"discount"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// SalePaymentResponse representa un pago en la respuesta
type SalePaymentResponse struct {
	PaymentID    uuid.UUID       `json:"payment_id"`
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	Installments int             `json:"installments"`
}

// SaleClientResponse datos del cliente hidratados en la respuesta
type SaleClientResponse struct {
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
}

// SaleResponse respuesta completa de una venta (items + pagos + cliente)
type SaleResponse struct {
	SaleID           uuid.UUID             `json:"sale_id"`
	PublicID         string                `json:"public_id"`
	Client           SaleClientResponse    `json:"client"`
	Items            []SaleItemResponse    `json:"items"`
	Payments         []SalePaymentResponse `json:"payments"`
	Discount         decimal.Decimal       `json:"discount"`
	Value            decimal.Decimal       `json:"value"`
	Status           string                `json:"status"`
	RequiresApproval bool                  `json:"requires_approval"`
	DeliveryDate     *time.Time            `json:"delivery_date,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// NewSaleResponse arma la respuesta hidratada desde el aggregate
func NewSaleResponse(sale *entity.Sale, client *entity.Client) *SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		items = append(items, SaleItemResponse{
			ItemID:           item.ID,
			ProductID:        item.ProductID,
			CustomName:       item.CustomName,
			IsCustom:         item.IsCustom,
			RequiresApproval: item.RequiresApproval,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Discount:         item.Discount,
			Subtotal:         item.Subtotal(),
		})
	}

	payments := make([]SalePaymentResponse, 0, len(sale.Payments))
	for i := range sale.Payments {
		payment := &sale.Payments[i]
		payments = append(payments, SalePaymentResponse{
			PaymentID:    payment.ID,
			Method:       string(payment.Method),
			Amount:       payment.Amount,
			Installments: payment.Installments,
		})
	}

	clientResp := SaleClientResponse{ClientID: sale.ClientID}
	if client != nil {
		clientResp.Name = client.Name
		clientResp.Email = client.Email
		clientResp.Phone = client.Phone
	}

	return &SaleResponse{
		SaleID:           sale.ID,
		PublicID:         sale.PublicID,
		Client:           clientResp,
		Items:            items,
		Payments:         payments,
		Discount:         sale.Discount,
		Value:            sale.Value,
		Status:           string(sale.Status),
		RequiresApproval: sale.RequiresApproval,
		DeliveryDate:     sale.DeliveryDate,
		CreatedAt:        sale.CreatedAt,
	}
}
