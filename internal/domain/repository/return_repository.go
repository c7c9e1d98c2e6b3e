package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// ReturnRepository define el puerto de persistencia para devoluciones.
type ReturnRepository interface {
	Create(ret *entity.Return, items []entity.ReturnItem) error
	GetByID(id int64) (*entity.Return, error)
	ListItems(returnID int64) ([]entity.ReturnItem, error)
	// Update persiste status, notas y los enlaces a transacción / venta de cambio.
	Update(ret *entity.Return) error
	List(limit, offset int) ([]*entity.Return, error)
}

// TransactionRepository define el puerto para transacciones financieras de
// devoluciones (una por devolución concluida).
type TransactionRepository interface {
	Create(tx *entity.FinancialTransaction) error
	GetByReturn(returnID int64) (*entity.FinancialTransaction, error)
}
