package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	inventoryEntity "sales/src/inventory/domain/entity"
	"sales/src/sales/application/request"
	"sales/src/sales/domain/entity"
	"sales/src/sales/infrastructure/sequencer"
	"sales/src/shared/infrastructure/memory"
)

// TestStockInvariants_RandomOperations ejecuta secuencias aleatorias de
// crear/editar/cancelar/entregar y verifica después de cada paso que los
// contadores de stock nunca queden negativos y que el stock en poder
// más lo ya consumido conserve el inicial.
func TestStockInvariants_RandomOperations(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		store := memory.NewStore()
		logger := zap.NewNop()
		builder := NewSaleBuilder(store, store)
		seq := sequencer.NewMemorySequencer("V")

		createUC := NewCreateSaleUseCase(builder, seq, store, store, store, logger)
		updateUC := NewUpdateSaleUseCase(builder, store, store, store, logger)
		confirmUC := NewConfirmDeliveryUseCase(store, store, store, nil, logger)
		cancelUC := NewCancelSaleUseCase(store, store, store, nil, logger)

		client := &entity.Client{ID: uuid.New(), Name: "Cliente"}
		store.SeedClient(client)

		initial := rapid.IntRange(1, 20).Draw(rt, "initial_stock")
		product, err := inventoryEntity.NewProduct("Producto", initial)
		if err != nil {
			rt.Fatalf("seed product: %v", err)
		}
		store.SeedProduct(product)

		var saleIDs []uuid.UUID
		consumed := 0

		price := decimal.RequireFromString("10.00")
		buildRequest := func(qty int) *request.CreateSaleRequest {
			return &request.CreateSaleRequest{
				ClientID: client.ID,
				Items: []request.SaleItemRequest{
					{ProductID: &product.ID, Quantity: qty, UnitPrice: price},
				},
				Payments: []request.SalePaymentRequest{
					{Method: "PIX", Amount: price.Mul(decimal.NewFromInt(int64(qty)))},
				},
			}
		}

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for step := 0; step < steps; step++ {
			op := rapid.IntRange(0, 3).Draw(rt, "op")

			switch op {
			case 0: // crear
				qty := rapid.IntRange(1, 6).Draw(rt, "qty")
				sale, err := createUC.Execute(ctx, buildRequest(qty))
				if err == nil {
					saleIDs = append(saleIDs, sale.ID)
				} else if !inventoryEntity.IsInsufficientStock(err) {
					rt.Fatalf("unexpected create error: %v", err)
				}

			case 1: // editar
				if len(saleIDs) == 0 {
					continue
				}
				id := saleIDs[rapid.IntRange(0, len(saleIDs)-1).Draw(rt, "edit_idx")]
				qty := rapid.IntRange(1, 6).Draw(rt, "new_qty")
				_, err := updateUC.Execute(ctx, id, &request.UpdateSaleRequest{
					Items: []request.SaleItemRequest{
						{ProductID: &product.ID, Quantity: qty, UnitPrice: price},
					},
					Payments: []request.SalePaymentRequest{
						{Method: "PIX", Amount: price.Mul(decimal.NewFromInt(int64(qty)))},
					},
				})
				if err != nil && !inventoryEntity.IsInsufficientStock(err) &&
					err != entity.ErrSaleAlreadyDelivered && err != entity.ErrSaleAlreadyCancelled {
					rt.Fatalf("unexpected update error: %v", err)
				}

			case 2: // cancelar
				if len(saleIDs) == 0 {
					continue
				}
				id := saleIDs[rapid.IntRange(0, len(saleIDs)-1).Draw(rt, "cancel_idx")]
				_, err := cancelUC.Execute(ctx, id)
				if err != nil && err != entity.ErrSaleAlreadyDelivered {
					rt.Fatalf("unexpected cancel error: %v", err)
				}

			case 3: // entregar
				if len(saleIDs) == 0 {
					continue
				}
				id := saleIDs[rapid.IntRange(0, len(saleIDs)-1).Draw(rt, "confirm_idx")]
				before, err := store.FindByID(ctx, id)
				if err != nil {
					rt.Fatalf("find sale: %v", err)
				}
				sale, err := confirmUC.Execute(ctx, id)
				if err != nil {
					if err != entity.ErrSaleAlreadyCancelled && err != entity.ErrApprovalPending {
						rt.Fatalf("unexpected confirm error: %v", err)
					}
					continue
				}
				if before.Status == entity.SaleStatusPending {
					consumed += sale.CatalogQuantities()[product.ID]
				}
			}

			products, err := store.GetProducts(ctx, []uuid.UUID{product.ID})
			if err != nil {
				rt.Fatalf("get products: %v", err)
			}
			p := products[0]

			if p.AvailableQuantity < 0 {
				rt.Fatalf("available went negative: %d", p.AvailableQuantity)
			}
			if p.ReservedQuantity < 0 {
				rt.Fatalf("reserved went negative: %d", p.ReservedQuantity)
			}
			if p.OnHand()+consumed != initial {
				rt.Fatalf("stock not conserved: available=%d reserved=%d consumed=%d initial=%d",
					p.AvailableQuantity, p.ReservedQuantity, consumed, initial)
			}
		}
	})
}
