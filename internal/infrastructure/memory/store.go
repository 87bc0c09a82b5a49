// Package memory implementa los puertos de persistencia sobre estructuras
// en memoria. Se usa en los tests de los casos de uso, con la misma semántica
// transaccional (snapshot/restore) que el TxRunner de PostgreSQL.
package memory

import (
	"sync"

	"github.com/tu-usuario/distrifarma-api/internal/domain/entity"
)

// Store guarda todas las tablas en memoria. Un mutex único alcanza porque
// solo lo usan tests.
type Store struct {
	mu sync.Mutex

	Products      map[string]*entity.Product
	Batches       map[string]*entity.Batch
	Suppliers     map[string]*entity.Supplier
	Purchases     map[string]*entity.Purchase
	PurchaseItems []*entity.PurchaseItem
	Adjustments   []*entity.StockAdjustment
	Notifications []*entity.Notification
	Users         map[string]*entity.User
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		Products:  make(map[string]*entity.Product),
		Batches:   make(map[string]*entity.Batch),
		Suppliers: make(map[string]*entity.Supplier),
		Purchases: make(map[string]*entity.Purchase),
		Users:     make(map[string]*entity.User),
	}
}

// snapshot devuelve una copia profunda del estado, para poder revertir
// una "transacción" fallida igual que haría un ROLLBACK.
func (s *Store) snapshot() *Store {
	cp := NewStore()
	for id, p := range s.Products {
		v := *p
		cp.Products[id] = &v
	}
	for id, b := range s.Batches {
		v := *b
		cp.Batches[id] = &v
	}
	for id, sp := range s.Suppliers {
		v := *sp
		cp.Suppliers[id] = &v
	}
	for id, p := range s.Purchases {
		v := *p
		v.Items = nil
		v.Supplier = nil
		cp.Purchases[id] = &v
	}
	for _, it := range s.PurchaseItems {
		v := *it
		cp.PurchaseItems = append(cp.PurchaseItems, &v)
	}
	for _, a := range s.Adjustments {
		v := *a
		cp.Adjustments = append(cp.Adjustments, &v)
	}
	for _, n := range s.Notifications {
		v := *n
		cp.Notifications = append(cp.Notifications, &v)
	}
	for id, u := range s.Users {
		v := *u
		cp.Users[id] = &v
	}
	return cp
}

// restore reemplaza el estado con el snapshot dado.
func (s *Store) restore(snap *Store) {
	s.Products = snap.Products
	s.Batches = snap.Batches
	s.Suppliers = snap.Suppliers
	s.Purchases = snap.Purchases
	s.PurchaseItems = snap.PurchaseItems
	s.Adjustments = snap.Adjustments
	s.Notifications = snap.Notifications
	s.Users = snap.Users
}
