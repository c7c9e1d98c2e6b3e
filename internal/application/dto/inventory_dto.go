package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity con signo: positivo entrada, negativo salida. Type es la etiqueta
// libre del movimiento ("Ajuste de inventario", "Entrada manual", ...).
type RegisterMovementRequest struct {
	ProductID  int64  `json:"product_id"`
	LocationID int64  `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Type       string `json:"type"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID      int64 `json:"product_id"`
	FromLocationID int64 `json:"from_location_id"`
	ToLocationID   int64 `json:"to_location_id"`
	Quantity       int64 `json:"quantity"`
}

// LowStockAlert señal de ressuprimento disparada por un movimiento que cruza
// el punto de reorden hacia abajo.
type LowStockAlert struct {
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	TotalStock   int64  `json:"total_stock"`
	ReorderPoint int64  `json:"reorder_point"`
}

// MovementResult resultado de registrar un movimiento o transferencia.
type MovementResult struct {
	Alerts []LowStockAlert `json:"alerts"`
}

// MovementResponse una entrada del historial de movimientos.
type MovementResponse struct {
	ID         int64     `json:"id"`
	GroupID    string    `json:"group_id"`
	ProductID  int64     `json:"product_id"`
	LocationID int64     `json:"location_id"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}
