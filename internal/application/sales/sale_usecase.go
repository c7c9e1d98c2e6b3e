package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// SaleUseCase registra ventas: valida la disponibilidad de TODAS las líneas
// antes de mutar nada y luego emite los débitos vía ledger (individual) o
// resolver (kit) dentro de una sola transacción.
type SaleUseCase struct {
	txRunner inventory.TxRunner
	repos    *repository.Repos
	ledger   *inventory.StockLedger
	resolver *inventory.KitResolver
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner inventory.TxRunner,
	repos *repository.Repos,
	ledger *inventory.StockLedger,
	resolver *inventory.KitResolver,
) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, repos: repos, ledger: ledger, resolver: resolver}
}

// RegisterSale crea una venta. Una línea inválida aborta la operación
// completa con cero efecto parcial.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	location, err := uc.repos.Locations.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	var (
		sale   *entity.Sale
		items  []entity.SaleItem
		alerts []*inventory.Alert
	)
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		sale, items, alerts, err = uc.RegisterSaleInTx(r, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(sale, items, inventory.AlertsToDTO(alerts...))
}

// RegisterSaleInTx ejecuta el flujo de venta con los repositorios del caller
// (misma transacción). Lo usa el flujo de devolución para la venta anidada de
// un cambio.
func (uc *SaleUseCase) RegisterSaleInTx(
	r *repository.Repos,
	in dto.CreateSaleRequest,
) (*entity.Sale, []entity.SaleItem, []*inventory.Alert, error) {
	if in.CustomerName == "" || len(in.Items) == 0 {
		return nil, nil, nil, domain.ErrInvalidInput
	}

	// Fase de validación: toda línea debe ser satisfacible antes del primer
	// débito.
	products := make([]*entity.Product, len(in.Items))
	for i, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, nil, nil, domain.ErrInvalidInput
		}
		product, err := r.Products.GetByID(line.ProductID)
		if err != nil {
			return nil, nil, nil, err
		}
		if product == nil {
			return nil, nil, nil, domain.ErrNotFound
		}
		if product.IsKit() {
			capacity, err := uc.resolver.AvailableQuantity(r, product.ID)
			if err != nil {
				return nil, nil, nil, err
			}
			if capacity < line.Quantity {
				return nil, nil, nil, domain.ErrInsufficientStock
			}
		} else {
			stock, err := r.Stock.Get(product.ID, in.LocationID)
			if err != nil {
				return nil, nil, nil, err
			}
			if stock.Quantity < line.Quantity {
				return nil, nil, nil, domain.ErrInsufficientStock
			}
		}
		products[i] = product
	}

	now := time.Now()
	sale := &entity.Sale{CustomerName: in.CustomerName, CreatedAt: now}
	items := make([]entity.SaleItem, len(in.Items))
	for i, line := range in.Items {
		items[i] = entity.SaleItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: products[i].SalePrice,
		}
	}
	if err := r.Sales.Create(sale, items); err != nil {
		return nil, nil, nil, err
	}

	// Fase de mutación: débitos por línea, todos etiquetados con la venta.
	groupID := uuid.New().String()
	label := fmt.Sprintf("Venta #%d", sale.ID)
	var alerts []*inventory.Alert
	for i, line := range in.Items {
		if products[i].IsKit() {
			kitAlerts, err := uc.resolver.ApplySale(r, products[i], line.Quantity, in.LocationID, label, groupID)
			if err != nil {
				return nil, nil, nil, err
			}
			alerts = append(alerts, kitAlerts...)
		} else {
			alert, err := uc.ledger.RecordMovement(r, products[i], in.LocationID, -line.Quantity, label, groupID)
			if err != nil {
				return nil, nil, nil, err
			}
			if alert != nil {
				alerts = append(alerts, alert)
			}
		}
	}
	return sale, items, alerts, nil
}

// GetByID devuelve una venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.repos.Sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Sales.ListItems(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(sale, items, nil)
}

// List lista ventas con paginación.
func (uc *SaleUseCase) List(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.repos.Sales.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		lines, err := uc.repos.Sales.ListItems(s.ID)
		if err != nil {
			return nil, err
		}
		resp, err := uc.toResponse(s, lines, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *SaleUseCase) toResponse(sale *entity.Sale, items []entity.SaleItem, alerts []dto.LowStockAlert) (*dto.SaleResponse, error) {
	lines := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		name := ""
		if p, err := uc.repos.Products.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return &dto.SaleResponse{
		ID:           sale.ID,
		CustomerName: sale.CustomerName,
		Items:        lines,
		Total:        entity.SaleTotal(items),
		Alerts:       alerts,
		CreatedAt:    sale.CreatedAt,
	}, nil
}
