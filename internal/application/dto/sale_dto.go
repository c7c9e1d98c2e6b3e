package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea del carrito: producto (individual o kit) y cantidad.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales. LocationID es la ubicación de
// salida del stock.
type CreateSaleRequest struct {
	CustomerName string            `json:"customer_name"`
	LocationID   int64             `json:"location_id"`
	Items        []SaleItemRequest `json:"items"`
}

// SaleItemResponse una línea de venta con el precio capturado.
type SaleItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta creada más las alertas de ressuprimento disparadas.
type SaleResponse struct {
	ID           int64              `json:"id"`
	CustomerName string             `json:"customer_name"`
	Items        []SaleItemResponse `json:"items"`
	Total        decimal.Decimal    `json:"total"`
	Alerts       []LowStockAlert    `json:"alerts,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
