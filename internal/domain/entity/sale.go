package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada. Una línea puede referenciar un kit;
// el efecto de stock se expresa siempre contra los componentes del kit, nunca
// contra el kit mismo.
type Sale struct {
	ID           int64
	CustomerName string
	CreatedAt    time.Time
}

// SaleItem es una línea de venta; el precio unitario se captura al momento de
// la venta.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal devuelve cantidad * precio unitario.
func (i SaleItem) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice)
}

// SaleTotal suma los subtotales de las líneas.
func SaleTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
