package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ReportUseCase consultas agregadas de solo lectura: stock bajo, valoración
// del inventario, rankings de ventas e historial de movimientos.
type ReportUseCase struct {
	repos   *repository.Repos
	reports repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos *repository.Repos, reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repos: repos, reports: reports}
}

// LowStock lista los productos individuales en o bajo su punto de
// ressuprimento. Es el corte vigente, independiente de las alertas de borde
// que emiten los movimientos.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	rows, err := uc.reports.LowStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LowStockItem{
			ProductID:    r.ProductID,
			Name:         r.Name,
			TotalStock:   r.TotalStock,
			ReorderPoint: r.ReorderPoint,
		})
	}
	return items, nil
}

// Valuation devuelve el valor total del inventario a precio de compra.
func (uc *ReportUseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	total, err := uc.reports.Valuation()
	if err != nil {
		return nil, err
	}
	return &dto.ValuationResponse{Total: total, GeneratedAt: time.Now()}, nil
}

// TopSellers ranking de productos por unidades vendidas.
func (uc *ReportUseCase) TopSellers(ctx context.Context, limit int) ([]dto.RankingItem, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.reports.TopSellers(limit)
	if err != nil {
		return nil, err
	}
	return toRanking(rows), nil
}

// KitRanking ranking restringido a kits.
func (uc *ReportUseCase) KitRanking(ctx context.Context, limit int) ([]dto.RankingItem, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.reports.KitRanking(limit)
	if err != nil {
		return nil, err
	}
	return toRanking(rows), nil
}

// SalesSummary agregados de ventas en [from, to].
func (uc *ReportUseCase) SalesSummary(ctx context.Context, from, to time.Time) (*dto.SalesSummaryResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	summary, err := uc.reports.SalesSummary(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:         from,
		To:           to,
		SalesCount:   summary.SalesCount,
		UnitsSold:    summary.UnitsSold,
		GrossRevenue: summary.GrossRevenue,
		GrossProfit:  summary.GrossProfit,
	}, nil
}

// MovementsByProduct historial de movimientos de un producto.
func (uc *ReportUseCase) MovementsByProduct(ctx context.Context, productID int64, limit, offset int) ([]dto.MovementResponse, error) {
	product, err := uc.repos.Products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Movements.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovements(list), nil
}

// MovementsByLocation historial de movimientos de una ubicación.
func (uc *ReportUseCase) MovementsByLocation(ctx context.Context, locationID int64, limit, offset int) ([]dto.MovementResponse, error) {
	location, err := uc.repos.Locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Movements.ListByLocation(locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovements(list), nil
}

// MovementsBySupplier historial de movimientos de los productos de un
// proveedor.
func (uc *ReportUseCase) MovementsBySupplier(ctx context.Context, supplierID int64, limit, offset int) ([]dto.MovementResponse, error) {
	supplier, err := uc.repos.Suppliers.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Movements.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovements(list), nil
}

func toRanking(rows []repository.ProductSalesRow) []dto.RankingItem {
	items := make([]dto.RankingItem, 0, len(rows))
	for i, r := range rows {
		items = append(items, dto.RankingItem{
			Position:  i + 1,
			ProductID: r.ProductID,
			Name:      r.Name,
			UnitsSold: r.UnitsSold,
		})
	}
	return items
}

func toMovements(list []*entity.StockMovement) []dto.MovementResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:         m.ID,
			GroupID:    m.GroupID,
			ProductID:  m.ProductID,
			LocationID: m.LocationID,
			Type:       m.Type,
			Quantity:   m.Quantity,
			CreatedAt:  m.CreatedAt,
		})
	}
	return items
}
