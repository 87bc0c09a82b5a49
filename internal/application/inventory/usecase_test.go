package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distrifarma-api/internal/application/dto"
	"github.com/tu-usuario/distrifarma-api/internal/application/inventory"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase(s *memory.Store) *inventory.QueryUseCase {
	return inventory.NewQueryUseCase(memory.NewProductRepository(s), memory.NewBatchRepository(s))
}

func addProduct(s *memory.Store, id, name string, reorder int64) {
	s.Products[id] = &entity.Product{ID: id, Name: name, ReorderLevel: reorder}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListProducts
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_PaginacionConHasMore(t *testing.T) {
	s := memory.NewStore()
	for i := 0; i < 25; i++ {
		addProduct(s, fmt.Sprintf("prod-%02d", i), fmt.Sprintf("Producto %02d", i), 0)
	}
	uc := newUseCase(s)

	out, err := uc.ListProducts(context.Background(), dto.ProductListRequest{
		PageRequest: dto.PageRequest{Limit: 10, Offset: 0},
	})
	require.NoError(t, err)
	assert.Len(t, out.Data, 10)
	assert.Equal(t, 25, out.Total)
	assert.True(t, out.HasMore)
	assert.Equal(t, "Producto 00", out.Data[0].Name, "orden por nombre ascendente")

	// Última página: 5 elementos, sin más
	out, err = uc.ListProducts(context.Background(), dto.ProductListRequest{
		PageRequest: dto.PageRequest{Limit: 10, Offset: 20},
	})
	require.NoError(t, err)
	assert.Len(t, out.Data, 5)
	assert.False(t, out.HasMore)
}

func TestListProducts_LimiteYOffsetPorDefecto(t *testing.T) {
	s := memory.NewStore()
	for i := 0; i < 30; i++ {
		addProduct(s, fmt.Sprintf("prod-%02d", i), fmt.Sprintf("Producto %02d", i), 0)
	}
	uc := newUseCase(s)

	// Sin límite explícito se aplica el de referencia (20).
	out, err := uc.ListProducts(context.Background(), dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Data, 20)
	assert.True(t, out.HasMore)
}

func TestListProducts_FiltroSubstringCaseInsensitive(t *testing.T) {
	s := memory.NewStore()
	s.Products["p1"] = &entity.Product{ID: "p1", Name: "Paracetamol 500mg", Manufacturer: "Genfar"}
	s.Products["p2"] = &entity.Product{ID: "p2", Name: "Ibuprofeno 400mg", Manufacturer: "MK"}
	s.Products["p3"] = &entity.Product{ID: "p3", Name: "Acetaminofén Forte", HSNCode: "PARA-30049099"}
	uc := newUseCase(s)

	out, err := uc.ListProducts(context.Background(), dto.ProductListRequest{Search: "para"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total, "coincide por nombre y por código HSN, sin distinguir mayúsculas")

	out, err = uc.ListProducts(context.Background(), dto.ProductListRequest{Search: "genfar"})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Paracetamol 500mg", out.Data[0].Name)
}

func TestListProducts_ConLotesSoloEnExistencia(t *testing.T) {
	s := memory.NewStore()
	addProduct(s, "p1", "Omeprazol 20mg", 0)
	s.Batches["b1"] = &entity.Batch{ID: "b1", ProductID: "p1", BatchNumber: "L-1",
		CurrentStock: 12, ExpiryDate: time.Now().AddDate(1, 0, 0)}
	s.Batches["b2"] = &entity.Batch{ID: "b2", ProductID: "p1", BatchNumber: "L-2",
		CurrentStock: 0, ExpiryDate: time.Now().AddDate(1, 0, 0)}
	uc := newUseCase(s)

	out, err := uc.ListProducts(context.Background(), dto.ProductListRequest{
		WithBatches: true, OnlyInStock: true,
	})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	require.Len(t, out.Data[0].Batches, 1, "el lote agotado no debe aparecer")
	assert.Equal(t, "L-1", out.Data[0].Batches[0].BatchNumber)

	// Sin el filtro aparecen ambos.
	out, err = uc.ListProducts(context.Background(), dto.ProductListRequest{WithBatches: true})
	require.NoError(t, err)
	assert.Len(t, out.Data[0].Batches, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProduct_ConTodosSusLotes(t *testing.T) {
	s := memory.NewStore()
	addProduct(s, "p1", "Losartán 50mg", 0)
	s.Batches["b1"] = &entity.Batch{ID: "b1", ProductID: "p1", BatchNumber: "L-1",
		CurrentStock: 0, ExpiryDate: time.Now().AddDate(1, 0, 0)}
	uc := newUseCase(s)

	out, err := uc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Losartán 50mg", out.Name)
	assert.Len(t, out.Batches, 1, "el detalle incluye también lotes agotados")
}

func TestGetProduct_Inexistente(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	_, err := uc.GetProduct(context.Background(), "p-no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ExpiringBatches
// ──────────────────────────────────────────────────────────────────────────────

// La ventana es (ahora, ahora+days]: lo ya vencido queda fuera, lo que vence
// dentro de la ventana entra ordenado por vencimiento más próximo.
func TestExpiringBatches_VentanaYOrden(t *testing.T) {
	s := memory.NewStore()
	addProduct(s, "p1", "Insulina", 0)
	s.Batches["vencido"] = &entity.Batch{ID: "vencido", ProductID: "p1", BatchNumber: "L-V",
		CurrentStock: 5, ExpiryDate: time.Now().AddDate(0, 0, -2)}
	s.Batches["pronto"] = &entity.Batch{ID: "pronto", ProductID: "p1", BatchNumber: "L-P",
		CurrentStock: 5, ExpiryDate: time.Now().AddDate(0, 0, 5)}
	s.Batches["despues"] = &entity.Batch{ID: "despues", ProductID: "p1", BatchNumber: "L-D",
		CurrentStock: 5, ExpiryDate: time.Now().AddDate(0, 0, 20)}
	s.Batches["lejano"] = &entity.Batch{ID: "lejano", ProductID: "p1", BatchNumber: "L-L",
		CurrentStock: 5, ExpiryDate: time.Now().AddDate(0, 3, 0)}
	uc := newUseCase(s)

	out, err := uc.ExpiringBatches(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "L-P", out[0].Batch.BatchNumber, "el vencimiento más próximo primero")
	assert.Equal(t, "L-D", out[1].Batch.BatchNumber)
	assert.Equal(t, "Insulina", out[0].Product.Name)
}

func TestExpiringBatches_VentanaPorDefecto(t *testing.T) {
	s := memory.NewStore()
	addProduct(s, "p1", "Insulina", 0)
	s.Batches["b1"] = &entity.Batch{ID: "b1", ProductID: "p1", BatchNumber: "L-1",
		CurrentStock: 5, ExpiryDate: time.Now().AddDate(0, 0, 29)}
	s.Batches["b2"] = &entity.Batch{ID: "b2", ProductID: "p1", BatchNumber: "L-2",
		CurrentStock: 5, ExpiryDate: time.Now().AddDate(0, 0, 45)}
	uc := newUseCase(s)

	// days <= 0 cae a la ventana de 30 días.
	out, err := uc.ExpiringBatches(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "L-1", out[0].Batch.BatchNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LowStockProducts
// ──────────────────────────────────────────────────────────────────────────────

// El umbral es inclusivo: stock total == nivel de reorden también alerta.
func TestLowStockProducts_UmbralInclusivo(t *testing.T) {
	s := memory.NewStore()
	addProduct(s, "p1", "Bajo", 10)      // total 8 → alerta
	addProduct(s, "p2", "Exacto", 10)    // total 10 → alerta (inclusivo)
	addProduct(s, "p3", "Suficiente", 10) // total 11 → no
	s.Batches["b1"] = &entity.Batch{ID: "b1", ProductID: "p1", BatchNumber: "L", CurrentStock: 5, ExpiryDate: time.Now().AddDate(1, 0, 0)}
	s.Batches["b2"] = &entity.Batch{ID: "b2", ProductID: "p1", BatchNumber: "L2", CurrentStock: 3, ExpiryDate: time.Now().AddDate(1, 0, 0)}
	s.Batches["b3"] = &entity.Batch{ID: "b3", ProductID: "p2", BatchNumber: "L", CurrentStock: 10, ExpiryDate: time.Now().AddDate(1, 0, 0)}
	s.Batches["b4"] = &entity.Batch{ID: "b4", ProductID: "p3", BatchNumber: "L", CurrentStock: 11, ExpiryDate: time.Now().AddDate(1, 0, 0)}
	uc := newUseCase(s)

	out, err := uc.LowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	byName := map[string]int64{}
	for _, row := range out {
		byName[row.Product.Name] = row.TotalStock
	}
	assert.Equal(t, int64(8), byName["Bajo"], "el stock total suma todos los lotes")
	assert.Equal(t, int64(10), byName["Exacto"])
	assert.NotContains(t, byName, "Suficiente")
}

// Un producto sin lotes tiene stock total cero y también alerta.
func TestLowStockProducts_SinLotes(t *testing.T) {
	s := memory.NewStore()
	addProduct(s, "p1", "Sin lotes", 5)
	uc := newUseCase(s)

	out, err := uc.LowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].TotalStock)
}
