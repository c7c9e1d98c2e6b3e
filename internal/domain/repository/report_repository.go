package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRow producto individual cuyo stock total está en o bajo el punto de
// ressuprimento.
type LowStockRow struct {
	ProductID    int64
	Name         string
	TotalStock   int64
	ReorderPoint int64
}

// ProductSalesRow unidades vendidas acumuladas de un producto.
type ProductSalesRow struct {
	ProductID int64
	Name      string
	Kind      string
	UnitsSold int64
}

// SalesPeriodSummary agregados de ventas en un rango de fechas.
type SalesPeriodSummary struct {
	SalesCount  int64
	UnitsSold   int64
	GrossRevenue decimal.Decimal
	GrossProfit  decimal.Decimal
}

// ReportRepository define el puerto de consultas agregadas de solo lectura.
// Ninguna de estas consultas muta estado.
type ReportRepository interface {
	LowStock() ([]LowStockRow, error)
	// Valuation suma stockTotal * preco_compra sobre productos individuales;
	// los kits quedan fuera porque su stock es derivado, no propio.
	Valuation() (decimal.Decimal, error)
	TopSellers(limit int) ([]ProductSalesRow, error)
	// KitRanking como TopSellers pero restringido a productos kind=kit.
	KitRanking(limit int) ([]ProductSalesRow, error)
	SalesSummary(from, to time.Time) (*SalesPeriodSummary, error)
}
