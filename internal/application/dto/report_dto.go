package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItem un producto en o bajo su punto de ressuprimento.
type LowStockItem struct {
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	TotalStock   int64  `json:"total_stock"`
	ReorderPoint int64  `json:"reorder_point"`
}

// ValuationResponse valor total del inventario a precio de compra
// (solo productos individuales).
type ValuationResponse struct {
	Total       decimal.Decimal `json:"total"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// RankingItem posición de un producto en un ranking de ventas.
type RankingItem struct {
	Position  int    `json:"position"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int64  `json:"units_sold"`
}

// SalesSummaryResponse agregados de ventas de un período.
type SalesSummaryResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	SalesCount   int64           `json:"sales_count"`
	UnitsSold    int64           `json:"units_sold"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
}
