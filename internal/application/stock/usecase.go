package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

// LedgerUseCase mantiene la existencia por lote: correcciones manuales
// (reemplazo auditado) e incrementos derivados, siempre en transacción.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, productRepo: productRepo}
}

// CorrectionInput entrada para una corrección manual de stock.
type CorrectionInput struct {
	BatchID  string
	Quantity int64  // nueva existencia; reemplaza, no incrementa
	Reason   string // obligatorio, queda en el log de ajustes
	UserID   string
}

// ApplyCorrection reemplaza la existencia de un lote por la cantidad indicada
// y deja constancia inmutable en stock_adjustments. Devuelve el lote
// actualizado con el detalle de su producto.
func (uc *LedgerUseCase) ApplyCorrection(ctx context.Context, in CorrectionInput) (*dto.StockCorrectionResponse, error) {
	if in.BatchID == "" || in.Reason == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var updated *entity.Batch

	err := uc.txRunner.RunStock(ctx, func(
		batches repository.BatchRepository,
		adjustments repository.StockAdjustmentRepository,
	) error {
		batch, err := batches.GetByIDForUpdate(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		adj := &entity.StockAdjustment{
			ID:          uuid.New().String(),
			BatchID:     batch.ID,
			PreviousQty: batch.CurrentStock,
			NewQty:      in.Quantity,
			Reason:      in.Reason,
			CreatedBy:   in.UserID,
			CreatedAt:   now,
		}
		if err := adjustments.Create(ctx, adj); err != nil {
			return err
		}
		batch.CurrentStock = in.Quantity
		batch.UpdatedAt = now
		if err := batches.Update(ctx, batch); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, updated.ProductID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockCorrectionResponse{Batch: toBatchResponse(updated)}
	if product != nil {
		resp.Product = dto.ProductResponse{
			ID:           product.ID,
			Name:         product.Name,
			Manufacturer: product.Manufacturer,
			HSNCode:      product.HSNCode,
			TaxRate:      product.TaxRate,
			RetailPrice:  product.RetailPrice,
			ReorderLevel: product.ReorderLevel,
			CreatedAt:    product.CreatedAt,
			UpdatedAt:    product.UpdatedAt,
		}
	}
	return resp, nil
}

// IncrementStock suma delta (puede ser negativo) a la existencia del lote,
// dentro de una transacción con la fila bloqueada. Un decremento que dejaría
// el stock negativo falla con ErrInsufficientStock, nunca se recorta a cero.
func (uc *LedgerUseCase) IncrementStock(ctx context.Context, batchID string, delta int64) (*dto.BatchResponse, error) {
	if batchID == "" {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Batch
	err := uc.txRunner.RunStock(ctx, func(
		batches repository.BatchRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		batch, err := batches.GetByIDForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.CurrentStock+delta < 0 {
			return domain.ErrInsufficientStock
		}
		batch.CurrentStock += delta
		batch.UpdatedAt = time.Now()
		if err := batches.Update(ctx, batch); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toBatchResponse(updated)
	return &resp, nil
}

func toBatchResponse(b *entity.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:            b.ID,
		ProductID:     b.ProductID,
		BatchNumber:   b.BatchNumber,
		ExpiryDate:    b.ExpiryDate,
		CurrentStock:  b.CurrentStock,
		PurchasePrice: b.PurchasePrice,
		SalePrice:     b.SalePrice,
		UpdatedAt:     b.UpdatedAt,
	}
}
