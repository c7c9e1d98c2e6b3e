package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	dominventory "github.com/tu-usuario/almacen-pro/internal/domain/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// KitResolver deriva disponibilidad y costo de los kits a partir de sus
// componentes y propaga los débitos/créditos de componentes cuando un kit se
// vende o se devuelve. Los kits no tienen stock propio.
type KitResolver struct {
	ledger *StockLedger
}

// NewKitResolver construye el resolver sobre el ledger.
func NewKitResolver(ledger *StockLedger) *KitResolver {
	return &KitResolver{ledger: ledger}
}

// AvailableQuantity devuelve cuántas unidades del kit pueden armarse con el
// stock total actual de los componentes (0 si el kit no tiene componentes).
func (kr *KitResolver) AvailableQuantity(r *repository.Repos, kitID int64) (int64, error) {
	avail, err := kr.componentAvailability(r, kitID)
	if err != nil {
		return 0, err
	}
	return dominventory.KitCapacity(avail), nil
}

// UnitCost calcula el costo derivado del kit a partir del preco de compra
// actual de los componentes.
func (kr *KitResolver) UnitCost(r *repository.Repos, kitID int64) (decimal.Decimal, error) {
	comps, err := r.Kits.ListByKit(kitID)
	if err != nil {
		return decimal.Zero, err
	}
	costs := make([]dominventory.ComponentCost, 0, len(comps))
	for _, c := range comps {
		p, err := r.Products.GetByID(c.ComponentID)
		if err != nil {
			return decimal.Zero, err
		}
		if p == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		costs = append(costs, dominventory.ComponentCost{QtyPerKit: c.QtyPerKit, PurchaseCost: p.PurchaseCost})
	}
	return dominventory.KitUnitCost(costs), nil
}

// RecomputeCost recalcula el costo derivado del kit y lo persiste en el
// producto. Se invoca al redefinir la composición.
func (kr *KitResolver) RecomputeCost(r *repository.Repos, kitID int64) (decimal.Decimal, error) {
	cost, err := kr.UnitCost(r, kitID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := r.Products.UpdateCost(kitID, cost); err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

// ApplySale debita los componentes de qty kits en la ubicación de venta.
// Valida la capacidad ANTES de emitir cualquier débito; si aun así un débito
// falla (stock suficiente en total pero no en esa ubicación), el caller
// aborta la transacción y nada queda aplicado a medias.
func (kr *KitResolver) ApplySale(
	r *repository.Repos,
	kit *entity.Product,
	qty int64,
	locationID int64,
	movementType string,
	groupID string,
) ([]*Alert, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	avail, err := kr.componentAvailability(r, kit.ID)
	if err != nil {
		return nil, err
	}
	if dominventory.KitCapacity(avail) < qty {
		return nil, domain.ErrInsufficientStock
	}

	var alerts []*Alert
	for _, c := range avail {
		component, err := r.Products.GetByID(c.Component.ComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, domain.ErrNotFound
		}
		alert, err := kr.ledger.RecordMovement(r, component, locationID, -c.Component.QtyPerKit*qty, movementType, groupID)
		if err != nil {
			return nil, err
		}
		if alert != nil {
			alerts = append(alerts, alert)
		}
	}
	return alerts, nil
}

// ApplyReturn acredita los componentes de qty kits en la ubicación de
// devolución. Los créditos nunca fallan por suficiencia de stock.
func (kr *KitResolver) ApplyReturn(
	r *repository.Repos,
	kit *entity.Product,
	qty int64,
	locationID int64,
	movementType string,
	groupID string,
) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	comps, err := r.Kits.ListByKit(kit.ID)
	if err != nil {
		return err
	}
	for _, c := range comps {
		component, err := r.Products.GetByID(c.ComponentID)
		if err != nil {
			return err
		}
		if component == nil {
			return domain.ErrNotFound
		}
		if _, err := kr.ledger.RecordMovement(r, component, locationID, c.QtyPerKit*qty, movementType, groupID); err != nil {
			return err
		}
	}
	return nil
}

func (kr *KitResolver) componentAvailability(r *repository.Repos, kitID int64) ([]dominventory.ComponentAvailability, error) {
	comps, err := r.Kits.ListByKit(kitID)
	if err != nil {
		return nil, err
	}
	avail := make([]dominventory.ComponentAvailability, 0, len(comps))
	for _, c := range comps {
		total, err := r.Stock.TotalByProduct(c.ComponentID)
		if err != nil {
			return nil, err
		}
		avail = append(avail, dominventory.ComponentAvailability{Component: c, TotalStock: total})
	}
	return avail, nil
}
