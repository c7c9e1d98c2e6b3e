package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una devolución. El paso solicitada → concluida es de una sola vía.
const (
	ReturnStatusSolicitada = "solicitada"
	ReturnStatusConcluida  = "concluida"
)

// Return representa un proceso de devolución o cambio sobre una venta.
// TransactionID y ExchangeSaleID se enlazan al concluir el proceso.
type Return struct {
	ID             int64
	SaleID         int64
	CustomerName   string
	Status         string
	Notes          string
	TransactionID  *int64
	ExchangeSaleID *int64
	CreatedAt      time.Time
}

// ReturnItem es una línea devuelta: cantidad ≤ cantidad vendida de ese
// producto en la venta original. UnitPrice se copia de la línea de venta.
type ReturnItem struct {
	ID        int64
	ReturnID  int64
	ProductID int64
	Quantity  int64
	Reason    string
	Condition string // "nuevo", "con defecto", "dañado"
	UnitPrice decimal.Decimal
}

// Subtotal devuelve el valor devuelto de la línea.
func (i ReturnItem) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice)
}

// ReturnTotal suma el valor devuelto de todas las líneas.
func ReturnTotal(items []ReturnItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
