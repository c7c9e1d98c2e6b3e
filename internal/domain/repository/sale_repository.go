package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale, items []entity.SaleItem) error
	GetByID(id int64) (*entity.Sale, error)
	ListItems(saleID int64) ([]entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
