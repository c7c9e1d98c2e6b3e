package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductKindIndividual = "individual" // stock propio por ubicación
	ProductKindKit        = "kit"        // stock y costo derivados de sus componentes
)

// Product representa un producto o SKU del catálogo.
// Para kind=kit, PurchaseCost es derivado (suma de costos de componentes) y el
// producto nunca tiene filas propias en stock: su disponibilidad se calcula
// siempre a partir de los componentes.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Category     string
	Barcode      string
	SupplierID   int64
	Kind         string
	PurchaseCost decimal.Decimal
	SalePrice    decimal.Decimal
	ReorderPoint int64 // punto de ressuprimento; solo aplica a individual
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsKit indica si el producto es un kit compuesto.
func (p *Product) IsKit() bool { return p.Kind == ProductKindKit }
