package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// MovementUseCase registra movimientos manuales y transferencias entre
// ubicaciones, de forma transaccional, vía el StockLedger.
type MovementUseCase struct {
	txRunner TxRunner
	repos    *repository.Repos // lecturas fuera de transacción
	ledger   *StockLedger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, repos *repository.Repos, ledger *StockLedger) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, repos: repos, ledger: ledger}
}

// RegisterMovement registra una entrada o salida manual (cantidad con signo).
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResult, error) {
	if in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, _, err := uc.resolve(in.ProductID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if product.IsKit() {
		return nil, domain.ErrInvalidOperation
	}
	label := in.Type
	if label == "" {
		label = "Ajuste manual"
	}

	groupID := uuid.New().String()
	var alert *Alert
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		alert, err = uc.ledger.RecordMovement(r, product, in.LocationID, in.Quantity, label, groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResult{Alerts: AlertsToDTO(alert)}, nil
}

// Transfer mueve una cantidad de un producto individual entre dos ubicaciones
// como un débito + crédito dentro de UNA transacción: o ambos movimientos
// quedan confirmados o ninguno.
func (uc *MovementUseCase) Transfer(ctx context.Context, in dto.TransferRequest) (*dto.MovementResult, error) {
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, origin, err := uc.resolve(in.ProductID, in.FromLocationID)
	if err != nil {
		return nil, err
	}
	if product.IsKit() {
		// Los kits no tienen presencia directa por ubicación.
		return nil, domain.ErrInvalidOperation
	}
	dest, err := uc.repos.Locations.GetByID(in.ToLocationID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrNotFound
	}

	groupID := uuid.New().String()
	var alert *Alert
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		alert, err = uc.ledger.RecordMovement(r, product, in.FromLocationID, -in.Quantity,
			fmt.Sprintf("Transferencia a %s", dest.Name), groupID)
		if err != nil {
			return err
		}
		_, err = uc.ledger.RecordMovement(r, product, in.ToLocationID, in.Quantity,
			fmt.Sprintf("Transferencia desde %s", origin.Name), groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResult{Alerts: AlertsToDTO(alert)}, nil
}

func (uc *MovementUseCase) resolve(productID, locationID int64) (*entity.Product, *entity.Location, error) {
	product, err := uc.repos.Products.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	location, err := uc.repos.Locations.GetByID(locationID)
	if err != nil {
		return nil, nil, err
	}
	if location == nil {
		return nil, nil, domain.ErrNotFound
	}
	return product, location, nil
}

// AlertsToDTO convierte alertas del ledger (ignorando nils) a su DTO,
// de-duplicando por producto.
func AlertsToDTO(alerts ...*Alert) []dto.LowStockAlert {
	seen := make(map[int64]bool, len(alerts))
	out := make([]dto.LowStockAlert, 0, len(alerts))
	for _, a := range alerts {
		if a == nil || seen[a.Product.ID] {
			continue
		}
		seen[a.Product.ID] = true
		out = append(out, dto.LowStockAlert{
			ProductID:    a.Product.ID,
			Name:         a.Product.Name,
			TotalStock:   a.TotalStock,
			ReorderPoint: a.Product.ReorderPoint,
		})
	}
	return out
}
