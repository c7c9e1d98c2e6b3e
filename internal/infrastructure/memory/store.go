// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Lo usan las pruebas de la capa de aplicación; el TxRunner simula
// el todo-o-nada de una transacción restaurando un snapshot del estado cuando
// el callback falla.
package memory

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

type stockKey struct {
	productID  int64
	locationID int64
}

// Store contiene todo el estado. No es seguro para uso concurrente; las
// pruebas son secuenciales.
type Store struct {
	seq int64

	suppliers    map[int64]entity.Supplier
	locations    map[int64]entity.Location
	products     map[int64]entity.Product
	kits         map[int64][]entity.KitComponent
	stock        map[stockKey]entity.Stock
	movements    []entity.StockMovement
	orders       map[int64]entity.PurchaseOrder
	orderItems   map[int64][]entity.PurchaseOrderItem
	sales        map[int64]entity.Sale
	saleItems    map[int64][]entity.SaleItem
	returns      map[int64]entity.Return
	returnItems  map[int64][]entity.ReturnItem
	transactions map[int64]entity.FinancialTransaction
	users        map[int64]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		suppliers:    make(map[int64]entity.Supplier),
		locations:    make(map[int64]entity.Location),
		products:     make(map[int64]entity.Product),
		kits:         make(map[int64][]entity.KitComponent),
		stock:        make(map[stockKey]entity.Stock),
		orders:       make(map[int64]entity.PurchaseOrder),
		orderItems:   make(map[int64][]entity.PurchaseOrderItem),
		sales:        make(map[int64]entity.Sale),
		saleItems:    make(map[int64][]entity.SaleItem),
		returns:      make(map[int64]entity.Return),
		returnItems:  make(map[int64][]entity.ReturnItem),
		transactions: make(map[int64]entity.FinancialTransaction),
		users:        make(map[int64]entity.User),
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// Repos devuelve el bundle de puertos sobre este store.
func (s *Store) Repos() *repository.Repos {
	return &repository.Repos{
		Suppliers:    &supplierRepo{s},
		Locations:    &locationRepo{s},
		Products:     &productRepo{s},
		Kits:         &kitRepo{s},
		Stock:        &stockRepo{s},
		Movements:    &movementRepo{s},
		Orders:       &orderRepo{s},
		Sales:        &saleRepo{s},
		Returns:      &returnRepo{s},
		Transactions: &transactionRepo{s},
	}
}

// Users devuelve el puerto de usuarios (fuera del bundle transaccional, igual
// que en la composición real).
func (s *Store) Users() repository.UserRepository {
	return &userRepo{s}
}

func (s *Store) snapshot() *Store {
	cp := &Store{
		seq:          s.seq,
		suppliers:    cloneMap(s.suppliers),
		locations:    cloneMap(s.locations),
		products:     cloneMap(s.products),
		kits:         cloneSliceMap(s.kits),
		stock:        cloneMap(s.stock),
		movements:    append([]entity.StockMovement(nil), s.movements...),
		orders:       cloneMap(s.orders),
		orderItems:   cloneSliceMap(s.orderItems),
		sales:        cloneMap(s.sales),
		saleItems:    cloneSliceMap(s.saleItems),
		returns:      cloneMap(s.returns),
		returnItems:  cloneSliceMap(s.returnItems),
		transactions: cloneMap(s.transactions),
		users:        cloneMap(s.users),
	}
	return cp
}

func (s *Store) restore(snap *Store) {
	s.seq = snap.seq
	s.suppliers = snap.suppliers
	s.locations = snap.locations
	s.products = snap.products
	s.kits = snap.kits
	s.stock = snap.stock
	s.movements = snap.movements
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.returns = snap.returns
	s.returnItems = snap.returnItems
	s.transactions = snap.transactions
	s.users = snap.users
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	cp := make(map[K]V, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func cloneSliceMap[K comparable, V any](m map[K][]V) map[K][]V {
	cp := make(map[K][]V, len(m))
	for k, v := range m {
		cp[k] = append([]V(nil), v...)
	}
	return cp
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback contra el store y, si falla, restaura el
// estado previo. Replica la semántica commit/rollback del TxRunner real.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre un store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con los repositorios del store; error => rollback.
func (t *TxRunner) Run(ctx context.Context, fn func(r *repository.Repos) error) error {
	snap := t.s.snapshot()
	if err := fn(t.s.Repos()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
