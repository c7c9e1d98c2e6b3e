package entity

import "time"

// Supplier representa un proveedor del catálogo. Eliminar un proveedor
// arrastra en cascada sus productos (lógica en el caso de uso, no en la BD).
type Supplier struct {
	ID        int64
	Name      string
	Company   string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
