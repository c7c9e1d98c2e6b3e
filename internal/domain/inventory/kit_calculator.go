package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// ComponentAvailability empareja un componente de kit con el stock total
// disponible de su producto.
type ComponentAvailability struct {
	Component  entity.KitComponent
	TotalStock int64
}

// KitCapacity calcula cuántas unidades de kit pueden armarse ahora mismo:
// min sobre componentes de floor(stockTotal / qtyPerKit). Un kit sin
// componentes tiene capacidad 0, no infinita.
func KitCapacity(components []ComponentAvailability) int64 {
	if len(components) == 0 {
		return 0
	}
	var capacity int64 = -1
	for _, c := range components {
		if c.Component.QtyPerKit <= 0 {
			return 0
		}
		units := c.TotalStock / c.Component.QtyPerKit
		if capacity < 0 || units < capacity {
			capacity = units
		}
	}
	return capacity
}

// ComponentCost empareja la cantidad requerida por kit con el costo de compra
// del producto componente.
type ComponentCost struct {
	QtyPerKit    int64
	PurchaseCost decimal.Decimal
}

// KitUnitCost calcula el costo derivado de una unidad de kit:
// suma de preco_compra * qtyPerKit sobre los componentes.
func KitUnitCost(components []ComponentCost) decimal.Decimal {
	cost := decimal.Zero
	for _, c := range components {
		cost = cost.Add(c.PurchaseCost.Mul(decimal.NewFromInt(c.QtyPerKit)))
	}
	return cost
}
