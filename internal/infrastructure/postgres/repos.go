package postgres

import (
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// NewRepos construye el bundle completo de adaptadores sobre un Querier
// (pool para lecturas sueltas, tx dentro de transacciones).
func NewRepos(q Querier) *repository.Repos {
	return &repository.Repos{
		Suppliers:    NewSupplierRepository(q),
		Locations:    NewLocationRepository(q),
		Products:     NewProductRepository(q),
		Kits:         NewKitRepository(q),
		Stock:        NewStockRepository(q),
		Movements:    NewStockMovementRepository(q),
		Orders:       NewPurchaseOrderRepository(q),
		Sales:        NewSaleRepository(q),
		Returns:      NewReturnRepository(q),
		Transactions: NewTransactionRepository(q),
	}
}
