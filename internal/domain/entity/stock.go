package entity

import "time"

// Stock representa la cantidad actual de un producto individual en una
// ubicación (fila materializada; los movimientos son la fuente de verdad).
type Stock struct {
	ProductID  int64
	LocationID int64
	Quantity   int64
	UpdatedAt  time.Time
}
