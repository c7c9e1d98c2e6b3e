package inventory

import (
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Alert señal de ressuprimento emitida por un movimiento que cruza el punto
// de reorden hacia abajo. TotalStock es el total tras el movimiento.
type Alert struct {
	Product    *entity.Product
	TotalStock int64
}

// StockLedger es la única vía de mutación de cantidades: actualiza la fila de
// stock y apendiza el movimiento inmutable como una sola unidad dentro de la
// transacción del caller. Todos los flujos (venta, transferencia, recepción
// de OC, devolución) pasan por aquí; ningún otro código escribe cantidades.
type StockLedger struct{}

// NewStockLedger construye el ledger.
func NewStockLedger() *StockLedger { return &StockLedger{} }

// RecordMovement aplica un delta con signo al stock de un producto individual
// en una ubicación y registra el movimiento en el historial.
//
//   - Los kits nunca se mueven directamente: ErrInvalidOperation.
//   - Una salida que dejaría la ubicación en negativo: ErrInsufficientStock.
//   - La alerta es por flanco: solo dispara cuando el total pasa de arriba del
//     punto de reorden a igual o abajo; movimientos que lo mantienen abajo no
//     re-alertan.
//
// Debe llamarse con repositorios atados a una transacción.
func (l *StockLedger) RecordMovement(
	r *repository.Repos,
	product *entity.Product,
	locationID int64,
	quantity int64,
	movementType string,
	groupID string,
) (*Alert, error) {
	if quantity == 0 || movementType == "" {
		return nil, domain.ErrInvalidInput
	}
	if product.IsKit() {
		return nil, domain.ErrInvalidOperation
	}

	stock, err := r.Stock.GetForUpdate(product.ID, locationID)
	if err != nil {
		return nil, err
	}
	if quantity < 0 && stock.Quantity < -quantity {
		return nil, domain.ErrInsufficientStock
	}

	prevTotal, err := r.Stock.TotalByProduct(product.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stock.Quantity += quantity
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		GroupID:    groupID,
		ProductID:  product.ID,
		LocationID: locationID,
		Type:       movementType,
		Quantity:   quantity,
		CreatedAt:  now,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, err
	}

	newTotal := prevTotal + quantity
	if prevTotal > product.ReorderPoint && newTotal <= product.ReorderPoint {
		return &Alert{Product: product, TotalStock: newTotal}, nil
	}
	return nil, nil
}
