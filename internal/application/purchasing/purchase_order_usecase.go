package purchasing

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

// PurchaseOrderUseCase crea y recibe órdenes de compra. Recibir una orden
// acredita el stock de cada línea en la ubicación indicada, vía el ledger,
// dentro de una transacción junto con el cambio de estado.
type PurchaseOrderUseCase struct {
	txRunner inventory.TxRunner
	repos    *repository.Repos
	ledger   *inventory.StockLedger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(txRunner inventory.TxRunner, repos *repository.Repos, ledger *inventory.StockLedger) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txRunner: txRunner, repos: repos, ledger: ledger}
}

// Create crea una orden Pendiente. Solo admite productos individuales del
// proveedor de la orden; el costo unitario se captura del producto y queda
// inmutable.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.repos.Suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.repos.Products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.IsKit() {
			// Los kits no tienen vía de compra propia.
			return nil, domain.ErrInvalidOperation
		}
		if product.SupplierID != in.SupplierID {
			return nil, fmt.Errorf("%w: el producto %d no pertenece al proveedor %d", domain.ErrInvalidInput, product.ID, in.SupplierID)
		}
		items = append(items, entity.PurchaseOrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  product.PurchaseCost,
		})
	}

	order := &entity.PurchaseOrder{
		SupplierID: in.SupplierID,
		Status:     entity.OrderStatusPendiente,
		CreatedAt:  time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		return r.Orders.Create(order, items)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items, nil)
}

// Receive recibe una orden Pendiente en una ubicación: una entrada de ledger
// por línea más el cambio de estado, todo en una transacción. La transición
// es de una sola vía: re-recibir falla con ErrInvalidState.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, orderID int64, in dto.ReceiveOrderRequest) (*dto.PurchaseOrderResponse, error) {
	location, err := uc.repos.Locations.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	var (
		order  *entity.PurchaseOrder
		items  []entity.PurchaseOrderItem
		alerts []*inventory.Alert
	)
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		order, err = r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPendiente {
			return domain.ErrInvalidState
		}
		items, err = r.Orders.ListItems(orderID)
		if err != nil {
			return err
		}

		groupID := uuid.New().String()
		label := fmt.Sprintf("Entrada OC #%d", order.ID)
		for _, it := range items {
			product, err := r.Products.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			alert, err := uc.ledger.RecordMovement(r, product, in.LocationID, it.Quantity, label, groupID)
			if err != nil {
				return err
			}
			if alert != nil {
				alerts = append(alerts, alert)
			}
		}
		order.Status = entity.OrderStatusRecibida
		return r.Orders.UpdateStatus(order.ID, entity.OrderStatusRecibida)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items, inventory.AlertsToDTO(alerts...))
}

// Cancel cancela una orden Pendiente.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, orderID int64) (*dto.PurchaseOrderResponse, error) {
	var (
		order *entity.PurchaseOrder
		items []entity.PurchaseOrderItem
	)
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		var err error
		order, err = r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPendiente {
			return domain.ErrInvalidState
		}
		items, err = r.Orders.ListItems(orderID)
		if err != nil {
			return err
		}
		order.Status = entity.OrderStatusCancelada
		return r.Orders.UpdateStatus(order.ID, entity.OrderStatusCancelada)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items, nil)
}

// GetByID devuelve una orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.repos.Orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Orders.ListItems(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items, nil)
}

// List lista órdenes con paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	list, err := uc.repos.Orders.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		lines, err := uc.repos.Orders.ListItems(o.ID)
		if err != nil {
			return nil, err
		}
		resp, err := uc.toResponse(o, lines, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.PurchaseOrderListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *PurchaseOrderUseCase) toResponse(order *entity.PurchaseOrder, items []entity.PurchaseOrderItem, alerts []dto.LowStockAlert) (*dto.PurchaseOrderResponse, error) {
	lines := make([]dto.PurchaseOrderItemResponse, 0, len(items))
	for _, it := range items {
		name := ""
		if p, err := uc.repos.Products.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, dto.PurchaseOrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			Subtotal:    it.Subtotal(),
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     order.Status,
		Items:      lines,
		Total:      entity.OrderTotal(items),
		Alerts:     alerts,
		CreatedAt:  order.CreatedAt,
	}, nil
}
