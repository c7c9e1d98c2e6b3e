package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus líneas (inmutables tras la creación).
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder, items []entity.PurchaseOrderItem) error
	GetByID(id int64) (*entity.PurchaseOrder, error)
	ListItems(orderID int64) ([]entity.PurchaseOrderItem, error)
	UpdateStatus(id int64, status string) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}
