package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// StockMovementRepository define el puerto del libro de movimientos
// (append-only; solo se borra en cascada con el producto o la ubicación).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(locationID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListBySupplier(supplierID int64, limit, offset int) ([]*entity.StockMovement, error)
	DeleteByProduct(productID int64) error
}
