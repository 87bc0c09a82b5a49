package memory

import (
	"context"

	"github.com/tu-usuario/distrifarma-api/internal/application/purchase"
	"github.com/tu-usuario/distrifarma-api/internal/application/stock"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

// TxRunner emula la semántica transaccional sobre el Store: toma un snapshot
// antes de ejecutar fn y lo restaura si fn falla, igual que un ROLLBACK.
type TxRunner struct {
	store *Store
}

var (
	_ purchase.TxRunner = (*TxRunner)(nil)
	_ stock.TxRunner    = (*TxRunner)(nil)
)

// NewTxRunner construye el runner sobre el store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repos de compra; restaura el estado previo si falla.
func (t *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	batches repository.BatchRepository,
	suppliers repository.SupplierRepository,
	purchases repository.PurchaseRepository,
) error) error {
	t.store.mu.Lock()
	snap := t.store.snapshot()
	t.store.mu.Unlock()

	err := fn(
		NewProductRepository(t.store),
		NewBatchRepository(t.store),
		NewSupplierRepository(t.store),
		NewPurchaseRepository(t.store),
	)
	if err != nil {
		t.store.mu.Lock()
		t.store.restore(snap)
		t.store.mu.Unlock()
		return err
	}
	return nil
}

// RunStock ejecuta fn con los repos del ledger de stock; mismo contrato que Run.
func (t *TxRunner) RunStock(ctx context.Context, fn func(
	batches repository.BatchRepository,
	adjustments repository.StockAdjustmentRepository,
) error) error {
	t.store.mu.Lock()
	snap := t.store.snapshot()
	t.store.mu.Unlock()

	err := fn(
		NewBatchRepository(t.store),
		NewStockAdjustmentRepository(t.store),
	)
	if err != nil {
		t.store.mu.Lock()
		t.store.restore(snap)
		t.store.mu.Unlock()
		return err
	}
	return nil
}
