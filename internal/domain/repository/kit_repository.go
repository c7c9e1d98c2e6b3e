package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// KitRepository define el puerto para la composición de kits (tabla de unión
// kit → componente + cantidad por kit).
type KitRepository interface {
	// ListByKit devuelve los componentes de un kit en orden de Position.
	ListByKit(kitID int64) ([]entity.KitComponent, error)
	// ReplaceComponents sustituye la lista completa de componentes del kit.
	ReplaceComponents(kitID int64, components []entity.KitComponent) error
	DeleteByKit(kitID int64) error
	// ListKitsByComponent devuelve los IDs de los kits cuya composición
	// referencia al producto.
	ListKitsByComponent(componentID int64) ([]int64, error)
	// DeleteByComponent quita el producto de la composición de todos los kits
	// que lo referencian (cascada al eliminar el producto componente).
	DeleteByComponent(componentID int64) error
}
