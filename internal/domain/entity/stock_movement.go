package entity

import "time"

// StockMovement es una entrada inmutable del libro de movimientos: delta de
// cantidad con signo contra un producto en una ubicación, con etiqueta de
// tipo en texto libre ("Venta #12", "Transferencia a Bodega B", ...).
// Solo se elimina en cascada con el producto o la ubicación.
type StockMovement struct {
	ID         int64
	GroupID    string // agrupa los movimientos emitidos por un mismo flujo
	ProductID  int64
	LocationID int64
	Type       string
	Quantity   int64 // positivo entrada, negativo salida
	CreatedAt  time.Time
}
