package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCost actualiza solo el costo de compra (costo derivado de kits).
	UpdateCost(productID int64, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	ListBySupplier(supplierID int64) ([]*entity.Product, error)
	Categories() ([]string, error)
	Delete(id int64) error
}
