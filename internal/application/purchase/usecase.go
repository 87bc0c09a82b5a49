package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// IntakeUseCase registra una compra a proveedor de forma transaccional:
// upsert de lotes, recálculo de impuestos, incremento del saldo del proveedor
// y snapshot inmutable de la compra, todo con Commit/Rollback único.
type IntakeUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(txRunner TxRunner, purchaseRepo repository.PurchaseRepository) *IntakeUseCase {
	return &IntakeUseCase{txRunner: txRunner, purchaseRepo: purchaseRepo}
}

// CreatePurchase procesa la factura del proveedor. Validación completa antes
// de tocar la BD; dentro de la transacción las líneas se procesan en el orden
// de entrada y cualquier fallo (proveedor o producto inexistente) revierte
// todas las mutaciones, incluidas las de líneas anteriores de la misma llamada.
func (uc *IntakeUseCase) CreatePurchase(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || in.BillNumber == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.BatchNumber == "" {
			return nil, domain.ErrInvalidInput
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.PurchasePrice.LessThan(decimal.Zero) || item.SalePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	purchaseID := uuid.New().String()
	var created *entity.Purchase

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		batches repository.BatchRepository,
		suppliers repository.SupplierRepository,
		purchases repository.PurchaseRepository,
	) error {
		supplier, err := suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}

		var subTotal, taxTotal decimal.Decimal
		items := make([]*entity.PurchaseItem, 0, len(in.Items))

		for _, line := range in.Items {
			product, err := products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}

			// Lote existente: sumar cantidad y sobrescribir precios/vencimiento
			// (gana la última compra). Inexistente: crearlo con stock = cantidad.
			// El FOR UPDATE garantiza que dos líneas de la misma factura sobre el
			// mismo lote acumulen en lugar de pisarse.
			batch, err := batches.GetByProductAndNumberForUpdate(ctx, line.ProductID, line.BatchNumber)
			if err != nil {
				return err
			}
			if batch != nil {
				batch.CurrentStock += line.Quantity
				batch.PurchasePrice = line.PurchasePrice
				batch.SalePrice = line.SalePrice
				batch.ExpiryDate = line.ExpiryDate
				batch.UpdatedAt = now
				if err := batches.Update(ctx, batch); err != nil {
					return err
				}
			} else {
				batch = &entity.Batch{
					ID:            uuid.New().String(),
					ProductID:     line.ProductID,
					BatchNumber:   line.BatchNumber,
					ExpiryDate:    line.ExpiryDate,
					CurrentStock:  line.Quantity,
					PurchasePrice: line.PurchasePrice,
					SalePrice:     line.SalePrice,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := batches.Create(ctx, batch); err != nil {
					return err
				}
			}

			lineSubtotal := decimal.NewFromInt(line.Quantity).Mul(line.PurchasePrice)
			lineTax := lineSubtotal.Mul(product.TaxRate).Div(hundred)
			subTotal = subTotal.Add(lineSubtotal)
			taxTotal = taxTotal.Add(lineTax)

			items = append(items, &entity.PurchaseItem{
				ID:            uuid.New().String(),
				PurchaseID:    purchaseID,
				ProductID:     line.ProductID,
				BatchID:       batch.ID,
				Quantity:      line.Quantity,
				PurchasePrice: line.PurchasePrice,
				TaxRate:       product.TaxRate,
				TaxAmount:     lineTax,
				TotalAmount:   lineSubtotal.Add(lineTax),
			})
		}

		netAmount := subTotal.Add(taxTotal)
		if err := suppliers.AddToBalance(ctx, supplier.ID, netAmount); err != nil {
			return err
		}

		p := &entity.Purchase{
			ID:         purchaseID,
			SupplierID: supplier.ID,
			BillNumber: in.BillNumber,
			SubTotal:   subTotal,
			TaxAmount:  taxTotal,
			NetAmount:  netAmount,
			CreatedAt:  now,
			Items:      items,
		}
		if err := purchases.Create(ctx, p); err != nil {
			return err
		}
		for _, item := range items {
			if err := purchases.CreateItem(ctx, item); err != nil {
				return err
			}
		}

		supplier.Balance = supplier.Balance.Add(netAmount)
		p.Supplier = supplier
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(created), nil
}

// GetByID devuelve una compra materializada (líneas + proveedor).
func (uc *IntakeUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		BillNumber: p.BillNumber,
		SubTotal:   p.SubTotal,
		TaxAmount:  p.TaxAmount,
		NetAmount:  p.NetAmount,
		CreatedAt:  p.CreatedAt,
		Items:      make([]dto.PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			BatchID:       item.BatchID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			TaxRate:       item.TaxRate,
			TaxAmount:     item.TaxAmount,
			TotalAmount:   item.TotalAmount,
		})
	}
	if p.Supplier != nil {
		resp.Supplier = &dto.SupplierResponse{
			ID:        p.Supplier.ID,
			Name:      p.Supplier.Name,
			Contact:   p.Supplier.Contact,
			Balance:   p.Supplier.Balance,
			CreatedAt: p.Supplier.CreatedAt,
		}
	}
	return resp
}
