package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/distrifarma-api/internal/domain"
	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
	"github.com/tu-usuario/distrifarma-api/internal/domain/repository"
)

// Guards de interfaz.
var (
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.BatchRepository           = (*BatchRepo)(nil)
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.PurchaseRepository        = (*PurchaseRepo)(nil)
	_ repository.NotificationRepository    = (*NotificationRepo)(nil)
	_ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)
	_ repository.UserRepository            = (*UserRepo)(nil)
)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct{ s *Store }

// NewProductRepository construye el repo.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *p
	r.s.Products[p.ID] = &v
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	v := *p
	return &v, nil
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*entity.Product
	needle := strings.ToLower(filter.Search)
	for _, p := range r.s.Products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.HSNCode), needle) &&
			!strings.Contains(strings.ToLower(p.Manufacturer), needle) {
			continue
		}
		v := *p
		matched = append(matched, &v)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *ProductRepo) LowStock(_ context.Context) ([]repository.LowStockRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := make(map[string]int64)
	for _, b := range r.s.Batches {
		totals[b.ProductID] += b.CurrentStock
	}
	var rows []repository.LowStockRow
	for _, p := range r.s.Products {
		if totals[p.ID] <= p.ReorderLevel {
			rows = append(rows, repository.LowStockRow{Product: *p, TotalStock: totals[p.ID]})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Product.Name < rows[j].Product.Name })
	return rows, nil
}

// BatchRepo implementación en memoria de BatchRepository.
type BatchRepo struct{ s *Store }

// NewBatchRepository construye el repo.
func NewBatchRepository(s *Store) *BatchRepo { return &BatchRepo{s: s} }

func (r *BatchRepo) Create(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Batches {
		if existing.ProductID == b.ProductID && existing.BatchNumber == b.BatchNumber {
			return domain.ErrDuplicate
		}
	}
	v := *b
	r.s.Batches[b.ID] = &v
	return nil
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.Batches[id]
	if !ok {
		return nil, nil
	}
	v := *b
	return &v, nil
}

func (r *BatchRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) GetByProductAndNumberForUpdate(_ context.Context, productID, batchNumber string) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.Batches {
		if b.ProductID == productID && b.BatchNumber == batchNumber {
			v := *b
			return &v, nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) Update(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	v := *b
	r.s.Batches[b.ID] = &v
	return nil
}

func (r *BatchRepo) ListByProduct(_ context.Context, productID string, onlyInStock bool) ([]*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Batch
	for _, b := range r.s.Batches {
		if b.ProductID != productID {
			continue
		}
		if onlyInStock && b.CurrentStock <= 0 {
			continue
		}
		v := *b
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (r *BatchRepo) ListExpiring(_ context.Context, from, to time.Time) ([]repository.ExpiringBatchRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []repository.ExpiringBatchRow
	for _, b := range r.s.Batches {
		if !b.ExpiryDate.After(from) || b.ExpiryDate.After(to) {
			continue
		}
		p, ok := r.s.Products[b.ProductID]
		if !ok {
			continue
		}
		rows = append(rows, repository.ExpiringBatchRow{Batch: *b, Product: *p})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Batch.ExpiryDate.Before(rows[j].Batch.ExpiryDate) })
	return rows, nil
}

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct{ s *Store }

// NewSupplierRepository construye el repo.
func NewSupplierRepository(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

func (r *SupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *sp
	r.s.Suppliers[sp.ID] = &v
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.Suppliers[id]
	if !ok {
		return nil, nil
	}
	v := *sp
	return &v, nil
}

func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, sp := range r.s.Suppliers {
		v := *sp
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := len(out)
	if offset >= total {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *SupplierRepo) AddToBalance(_ context.Context, supplierID string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.Suppliers[supplierID]
	if !ok {
		return domain.ErrNotFound
	}
	sp.Balance = sp.Balance.Add(amount)
	return nil
}

// PurchaseRepo implementación en memoria de PurchaseRepository.
type PurchaseRepo struct{ s *Store }

// NewPurchaseRepository construye el repo.
func NewPurchaseRepository(s *Store) *PurchaseRepo { return &PurchaseRepo{s: s} }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *p
	v.Items = nil
	v.Supplier = nil
	r.s.Purchases[p.ID] = &v
	return nil
}

func (r *PurchaseRepo) CreateItem(_ context.Context, item *entity.PurchaseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *item
	r.s.PurchaseItems = append(r.s.PurchaseItems, &v)
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Purchases[id]
	if !ok {
		return nil, nil
	}
	v := *p
	for _, it := range r.s.PurchaseItems {
		if it.PurchaseID == id {
			iv := *it
			v.Items = append(v.Items, &iv)
		}
	}
	if sp, ok := r.s.Suppliers[v.SupplierID]; ok {
		sv := *sp
		v.Supplier = &sv
	}
	return &v, nil
}

// NotificationRepo implementación en memoria de NotificationRepository.
type NotificationRepo struct{ s *Store }

// NewNotificationRepository construye el repo.
func NewNotificationRepository(s *Store) *NotificationRepo { return &NotificationRepo{s: s} }

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *n
	r.s.Notifications = append(r.s.Notifications, &v)
	return nil
}

func (r *NotificationRepo) ExistsUnread(_ context.Context, ntype, message string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.Notifications {
		if n.Type == ntype && n.Message == message && !n.Read {
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepo) ListRecent(_ context.Context, limit int) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.s.Notifications {
		v := *n
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.Notifications {
		if n.ID == id {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

// StockAdjustmentRepo implementación en memoria de StockAdjustmentRepository.
type StockAdjustmentRepo struct{ s *Store }

// NewStockAdjustmentRepository construye el repo.
func NewStockAdjustmentRepository(s *Store) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{s: s}
}

func (r *StockAdjustmentRepo) Create(_ context.Context, adj *entity.StockAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *adj
	r.s.Adjustments = append(r.s.Adjustments, &v)
	return nil
}

func (r *StockAdjustmentRepo) ListByBatch(_ context.Context, batchID string, limit int) ([]*entity.StockAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockAdjustment
	for _, a := range r.s.Adjustments {
		if a.BatchID == batchID {
			v := *a
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ s *Store }

// NewUserRepository construye el repo.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	v := *u
	r.s.Users[u.ID] = &v
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if u.Email == email {
			v := *u
			return &v, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[id]
	if !ok {
		return nil, nil
	}
	v := *u
	return &v, nil
}
