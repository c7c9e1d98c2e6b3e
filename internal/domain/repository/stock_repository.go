package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar la cantidad por
// producto + ubicación. Dentro de transacciones garantiza consistencia.
type StockRepository interface {
	Get(productID, locationID int64) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, locationID int64) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// TotalByProduct suma la cantidad del producto en todas las ubicaciones.
	TotalByProduct(productID int64) (int64, error)
	ListByProduct(productID int64) ([]*entity.Stock, error)
	ListByLocation(locationID int64) ([]*entity.Stock, error)
	// HasPositiveStock indica si alguna fila de la ubicación tiene cantidad > 0.
	HasPositiveStock(locationID int64) (bool, error)
	DeleteByProduct(productID int64) error
}
