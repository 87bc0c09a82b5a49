package purchase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/application/purchase"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedStore crea un store con un proveedor, un producto con IVA 12% y un lote
// existente con 30 unidades.
func seedStore() *memory.Store {
	s := memory.NewStore()
	s.Suppliers["sup-1"] = &entity.Supplier{
		ID:      "sup-1",
		Name:    "Droguería Central",
		Balance: dec("100.00"),
	}
	s.Products["prod-1"] = &entity.Product{
		ID:           "prod-1",
		Name:         "Paracetamol 500mg",
		TaxRate:      dec("12"),
		ReorderLevel: 10,
	}
	s.Batches["batch-1"] = &entity.Batch{
		ID:           "batch-1",
		ProductID:    "prod-1",
		BatchNumber:  "L-2026-01",
		CurrentStock: 30,
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
	}
	return s
}

func newUseCase(s *memory.Store) *purchase.IntakeUseCase {
	return purchase.NewIntakeUseCase(memory.NewTxRunner(s), memory.NewPurchaseRepository(s))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

// Compra de 20 unidades a 10.00 con IVA 12%: subtotal 200, impuesto 24,
// total 224; el lote existente pasa de 30 a 50 y el saldo del proveedor
// sube exactamente en el total.
func TestCreatePurchase_LoteExistenteAcumulaYCalculaImpuesto(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	out, err := uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		BillNumber: "F-0001",
		Items: []dto.PurchaseItemRequest{
			{
				ProductID:     "prod-1",
				BatchNumber:   "L-2026-01",
				Quantity:      20,
				PurchasePrice: dec("10.00"),
				SalePrice:     dec("14.50"),
				ExpiryDate:    time.Now().AddDate(1, 6, 0),
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, dec("200").Equal(out.SubTotal), "subtotal esperado 200, fue %s", out.SubTotal)
	assert.True(t, dec("24").Equal(out.TaxAmount), "impuesto esperado 24, fue %s", out.TaxAmount)
	assert.True(t, dec("224").Equal(out.NetAmount), "total esperado 224, fue %s", out.NetAmount)
	// Invariante: net = sub_total + tax_amount
	assert.True(t, out.SubTotal.Add(out.TaxAmount).Equal(out.NetAmount))

	assert.Equal(t, int64(50), s.Batches["batch-1"].CurrentStock,
		"el lote existente debe acumular 30+20")
	assert.True(t, dec("14.50").Equal(s.Batches["batch-1"].SalePrice),
		"la última compra sobrescribe el precio de venta")
	assert.True(t, dec("324").Equal(s.Suppliers["sup-1"].Balance),
		"saldo anterior 100 + total 224")

	require.Len(t, out.Items, 1)
	assert.True(t, dec("12").Equal(out.Items[0].TaxRate),
		"la línea guarda snapshot de la tasa del producto")
	require.NotNil(t, out.Supplier)
	assert.True(t, dec("324").Equal(out.Supplier.Balance))
}

// Dos líneas de la misma factura sobre un lote que no existía: la primera lo
// crea y la segunda acumula sobre él. Debe quedar un único lote con 15.
func TestCreatePurchase_MismoLoteNuevoDosVeces(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	line := dto.PurchaseItemRequest{
		ProductID:     "prod-1",
		BatchNumber:   "L-2026-09",
		PurchasePrice: dec("5.00"),
		SalePrice:     dec("8.00"),
		ExpiryDate:    time.Now().AddDate(2, 0, 0),
	}
	lineA, lineB := line, line
	lineA.Quantity = 10
	lineB.Quantity = 5

	out, err := uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		BillNumber: "F-0002",
		Items:      []dto.PurchaseItemRequest{lineA, lineB},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 2, "cada línea de la factura conserva su propio snapshot")

	// Un solo lote nuevo con la suma de ambas líneas.
	var count int
	for _, b := range s.Batches {
		if b.BatchNumber == "L-2026-09" {
			count++
			assert.Equal(t, int64(15), b.CurrentStock)
		}
	}
	assert.Equal(t, 1, count, "no deben crearse lotes duplicados para el mismo número")
	assert.Equal(t, out.Items[0].BatchID, out.Items[1].BatchID)
}

// Si una línea referencia un producto inexistente, NADA de la factura se
// persiste: ni el stock de líneas anteriores, ni el saldo, ni la compra.
func TestCreatePurchase_ProductoInexistente_RevierteTodo(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	_, err := uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		BillNumber: "F-0003",
		Items: []dto.PurchaseItemRequest{
			{
				ProductID:     "prod-1",
				BatchNumber:   "L-2026-01",
				Quantity:      20,
				PurchasePrice: dec("10.00"),
				SalePrice:     dec("14.00"),
				ExpiryDate:    time.Now().AddDate(1, 0, 0),
			},
			{
				ProductID:     "prod-no-existe",
				BatchNumber:   "L-X",
				Quantity:      1,
				PurchasePrice: dec("1.00"),
				SalePrice:     dec("2.00"),
				ExpiryDate:    time.Now().AddDate(1, 0, 0),
			},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(30), s.Batches["batch-1"].CurrentStock,
		"el incremento de la primera línea debe revertirse")
	assert.True(t, dec("100.00").Equal(s.Suppliers["sup-1"].Balance),
		"el saldo del proveedor no debe cambiar")
	assert.Empty(t, s.Purchases, "no debe quedar cabecera de compra")
	assert.Empty(t, s.PurchaseItems, "no deben quedar líneas de compra")
}

// Proveedor inexistente → ErrNotFound sin efectos.
func TestCreatePurchase_ProveedorInexistente(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	_, err := uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-no-existe",
		BillNumber: "F-0004",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", BatchNumber: "L-2026-01", Quantity: 1,
				PurchasePrice: dec("1"), SalePrice: dec("1"), ExpiryDate: time.Now().AddDate(1, 0, 0)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(30), s.Batches["batch-1"].CurrentStock)
}

// Cantidades no positivas se rechazan antes de abrir la transacción.
func TestCreatePurchase_CantidadInvalida(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	for _, qty := range []int64{0, -5} {
		_, err := uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
			SupplierID: "sup-1",
			BillNumber: "F-0005",
			Items: []dto.PurchaseItemRequest{
				{ProductID: "prod-1", BatchNumber: "L-2026-01", Quantity: qty,
					PurchasePrice: dec("1"), SalePrice: dec("1"), ExpiryDate: time.Now().AddDate(1, 0, 0)},
			},
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput, "qty=%d", qty)
	}
}

// Factura sin líneas o sin número → ErrInvalidInput.
func TestCreatePurchase_FacturaIncompleta(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	_, err := uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1", BillNumber: "F-0006",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", BatchNumber: "L", Quantity: 1,
				PurchasePrice: dec("1"), SalePrice: dec("1"), ExpiryDate: time.Now().AddDate(1, 0, 0)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_CompraInexistente(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	_, err := uc.GetByID(context.Background(), "compra-no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_DevuelveLineasYProveedor(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	created, err := uc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		BillNumber: "F-0007",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", BatchNumber: "L-2026-01", Quantity: 3,
				PurchasePrice: dec("7.50"), SalePrice: dec("11.00"), ExpiryDate: time.Now().AddDate(1, 0, 0)},
		},
	})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "F-0007", got.BillNumber)
	require.Len(t, got.Items, 1)
	assert.True(t, created.NetAmount.Equal(got.NetAmount))
	require.NotNil(t, got.Supplier)
	assert.Equal(t, "Droguería Central", got.Supplier.Name)
}
