package entity

// KitComponent vincula un kit con un producto componente y la cantidad
// requerida por unidad de kit. La lista es ordenada (Position) y solo admite
// componentes de tipo individual: un kit no puede anidar otro kit.
type KitComponent struct {
	KitID       int64
	ComponentID int64
	QtyPerKit   int64
	Position    int
}
