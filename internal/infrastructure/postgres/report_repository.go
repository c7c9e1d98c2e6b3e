package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar el pool.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// LowStock productos individuales con stock total en o bajo su punto de
// ressuprimento. Productos sin filas de stock cuentan como total cero.
func (r *ReportRepo) LowStock() ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.name, COALESCE(SUM(s.quantity), 0) AS total, p.reorder_point
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.kind = 'individual'
		GROUP BY p.id, p.name, p.reorder_point
		HAVING COALESCE(SUM(s.quantity), 0) <= p.reorder_point
		ORDER BY total, p.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.TotalStock, &row.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Valuation suma stock total * costo de compra de los productos individuales.
func (r *ReportRepo) Valuation() (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.quantity * p.purchase_cost), 0)
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE p.kind = 'individual'`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("valuation report: %w", err)
	}
	return total, nil
}

// TopSellers productos por unidades vendidas, descendente.
func (r *ReportRepo) TopSellers(limit int) ([]repository.ProductSalesRow, error) {
	query := `
		SELECT p.id, p.name, p.kind, COALESCE(SUM(si.quantity), 0) AS units
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		GROUP BY p.id, p.name, p.kind
		ORDER BY units DESC, p.name
		LIMIT $1`
	return r.salesRanking(query, limit)
}

// KitRanking como TopSellers pero restringido a kits.
func (r *ReportRepo) KitRanking(limit int) ([]repository.ProductSalesRow, error) {
	query := `
		SELECT p.id, p.name, p.kind, COALESCE(SUM(si.quantity), 0) AS units
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE p.kind = 'kit'
		GROUP BY p.id, p.name, p.kind
		ORDER BY units DESC, p.name
		LIMIT $1`
	return r.salesRanking(query, limit)
}

func (r *ReportRepo) salesRanking(query string, limit int) ([]repository.ProductSalesRow, error) {
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("sales ranking: %w", err)
	}
	defer rows.Close()

	var list []repository.ProductSalesRow
	for rows.Next() {
		var row repository.ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Kind, &row.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesSummary agregados de ventas en [from, to]. La utilidad bruta usa el
// costo de compra vigente del producto, no el histórico.
func (r *ReportRepo) SalesSummary(from, to time.Time) (*repository.SalesPeriodSummary, error) {
	query := `
		SELECT COUNT(DISTINCT s.id),
			COALESCE(SUM(si.quantity), 0),
			COALESCE(SUM(si.quantity * si.unit_price), 0),
			COALESCE(SUM(si.quantity * (si.unit_price - p.purchase_cost)), 0)
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		JOIN products p ON p.id = si.product_id
		WHERE s.created_at >= $1 AND s.created_at <= $2`
	var summary repository.SalesPeriodSummary
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(
		&summary.SalesCount, &summary.UnitsSold, &summary.GrossRevenue, &summary.GrossProfit,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &summary, nil
}
