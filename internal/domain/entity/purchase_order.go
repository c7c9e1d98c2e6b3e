package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. Una vez Recibida no admite más transiciones.
const (
	OrderStatusPendiente = "Pendiente"
	OrderStatusRecibida  = "Recibida"
	OrderStatusCancelada = "Cancelada"
)

// PurchaseOrder representa una orden de compra a un proveedor. Solo productos
// individuales pueden aparecer en sus líneas (los kits no tienen costo de
// compra propio).
type PurchaseOrder struct {
	ID         int64
	SupplierID int64
	Status     string
	CreatedAt  time.Time
}

// PurchaseOrderItem es una línea de la orden; cantidad y costo unitario se
// capturan al crear la orden y son inmutables después.
type PurchaseOrderItem struct {
	ID       int64
	OrderID  int64
	ProductID int64
	Quantity int64
	UnitCost decimal.Decimal
}

// Subtotal devuelve cantidad * costo unitario.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitCost)
}

// OrderTotal suma los subtotales de las líneas.
func OrderTotal(items []PurchaseOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
