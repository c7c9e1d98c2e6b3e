package entity

import "time"

// Location representa una ubicación física del inventario (bodega, tienda).
// El nombre es único. No puede eliminarse mientras tenga stock positivo.
type Location struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
