package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

// DefaultExpiryWindowDays ventana por defecto para lotes próximos a vencer.
const DefaultExpiryWindowDays = 30

// QueryUseCase consultas de solo lectura sobre el inventario: listado
// paginado con filtros, detalle de producto, vencimientos y stock bajo.
type QueryUseCase struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(productRepo repository.ProductRepository, batchRepo repository.BatchRepository) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, batchRepo: batchRepo}
}

// ListProducts lista productos ordenados por nombre, con filtro substring
// case-insensitive sobre nombre, código HSN y laboratorio. WithBatches carga
// los lotes de cada producto; OnlyInStock limita esos lotes a existencia > 0.
func (uc *QueryUseCase) ListProducts(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.productRepo.List(ctx, repository.ProductFilter{
		Search: in.Search,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		item := toProductResponse(p)
		if in.WithBatches {
			batches, err := uc.batchRepo.ListByProduct(ctx, p.ID, in.OnlyInStock)
			if err != nil {
				return nil, err
			}
			item.Batches = toBatchResponses(batches)
		}
		items = append(items, item)
	}
	return &dto.ProductListResponse{
		Data:    items,
		Total:   total,
		HasMore: in.Offset+len(items) < total,
	}, nil
}

// GetProduct devuelve un producto con todos sus lotes.
func (uc *QueryUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByProduct(ctx, id, false)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	resp.Batches = toBatchResponses(batches)
	return &resp, nil
}

// ExpiringBatches devuelve lotes cuyo vencimiento cae en (ahora, ahora+days].
// days <= 0 usa la ventana por defecto de 30 días.
func (uc *QueryUseCase) ExpiringBatches(ctx context.Context, days int) ([]dto.ExpiringBatchResponse, error) {
	if days <= 0 {
		days = DefaultExpiryWindowDays
	}
	now := time.Now()
	rows, err := uc.batchRepo.ListExpiring(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpiringBatchResponse, 0, len(rows))
	for _, row := range rows {
		b := row.Batch
		out = append(out, dto.ExpiringBatchResponse{
			Batch: dto.BatchResponse{
				ID:            b.ID,
				ProductID:     b.ProductID,
				BatchNumber:   b.BatchNumber,
				ExpiryDate:    b.ExpiryDate,
				CurrentStock:  b.CurrentStock,
				PurchasePrice: b.PurchasePrice,
				SalePrice:     b.SalePrice,
				UpdatedAt:     b.UpdatedAt,
			},
			Product: toProductResponse(&row.Product),
		})
	}
	return out, nil
}

// LowStockProducts devuelve los productos cuyo stock total (suma de lotes)
// es menor o igual a su nivel de reorden.
func (uc *QueryUseCase) LowStockProducts(ctx context.Context) ([]dto.LowStockProductResponse, error) {
	rows, err := uc.productRepo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockProductResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.LowStockProductResponse{
			Product:    toProductResponse(&row.Product),
			TotalStock: row.TotalStock,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		HSNCode:      p.HSNCode,
		TaxRate:      p.TaxRate,
		RetailPrice:  p.RetailPrice,
		ReorderLevel: p.ReorderLevel,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toBatchResponses(batches []*entity.Batch) []dto.BatchResponse {
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchResponse{
			ID:            b.ID,
			ProductID:     b.ProductID,
			BatchNumber:   b.BatchNumber,
			ExpiryDate:    b.ExpiryDate,
			CurrentStock:  b.CurrentStock,
			PurchasePrice: b.PurchasePrice,
			SalePrice:     b.SalePrice,
			UpdatedAt:     b.UpdatedAt,
		})
	}
	return out
}
