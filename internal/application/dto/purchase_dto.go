package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest una línea de orden de compra; el costo unitario se
// captura del producto al crear la orden.
type PurchaseItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID int64                 `json:"supplier_id"`
	Items      []PurchaseItemRequest `json:"items"`
}

// ReceiveOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveOrderRequest struct {
	LocationID int64 `json:"location_id"`
}

// PurchaseOrderItemResponse una línea de la orden.
type PurchaseOrderItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden de compra con líneas y total.
type PurchaseOrderResponse struct {
	ID         int64                       `json:"id"`
	SupplierID int64                       `json:"supplier_id"`
	Status     string                      `json:"status"`
	Items      []PurchaseOrderItemResponse `json:"items"`
	Total      decimal.Decimal             `json:"total"`
	Alerts     []LowStockAlert             `json:"alerts,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}

// PurchaseOrderListResponse listado paginado de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
