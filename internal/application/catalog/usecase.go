package catalog

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

// CatalogUseCase altas administrativas del catálogo: productos y proveedores.
// Los lotes no se crean aquí; nacen con las compras o correcciones de stock.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(productRepo repository.ProductRepository, supplierRepo repository.SupplierRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, supplierRepo: supplierRepo}
}

// CreateProduct da de alta un producto del catálogo.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.LessThan(decimal.Zero) || in.RetailPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Manufacturer: in.Manufacturer,
		HSNCode:      in.HSNCode,
		TaxRate:      in.TaxRate,
		RetailPrice:  in.RetailPrice,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Manufacturer: product.Manufacturer,
		HSNCode:      product.HSNCode,
		TaxRate:      product.TaxRate,
		RetailPrice:  product.RetailPrice,
		ReorderLevel: product.ReorderLevel,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}, nil
}

// CreateSupplier registra un proveedor con saldo inicial cero.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetSupplier devuelve un proveedor por ID.
func (uc *CatalogUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.supplierRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Data:    items,
		Total:   total,
		HasMore: page.Offset+len(items) < total,
	}, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Balance:   s.Balance,
		CreatedAt: s.CreatedAt,
	}
}
