package inventory

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// bundle de repositorios atados a esa tx. Garantiza que cada flujo multi-paso
// (venta, transferencia, recepción, devolución) confirme todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *repository.Repos) error) error
}
