package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ReturnUseCase gestiona devoluciones en dos fases: Initiate valida y
// persiste la solicitud sin efecto de stock ni financiero; Process reingresa
// el stock, crea la transacción financiera (y la venta anidada si es cambio)
// y concluye la devolución, todo en una transacción.
type ReturnUseCase struct {
	txRunner inventory.TxRunner
	repos    *repository.Repos
	ledger   *inventory.StockLedger
	resolver *inventory.KitResolver
	sales    *SaleUseCase
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(
	txRunner inventory.TxRunner,
	repos *repository.Repos,
	ledger *inventory.StockLedger,
	resolver *inventory.KitResolver,
	sales *SaleUseCase,
) *ReturnUseCase {
	return &ReturnUseCase{txRunner: txRunner, repos: repos, ledger: ledger, resolver: resolver, sales: sales}
}

// Initiate valida las líneas contra la venta original y persiste la
// devolución en estado "solicitada".
func (uc *ReturnUseCase) Initiate(ctx context.Context, in dto.InitiateReturnRequest) (*dto.ReturnResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.repos.Sales.GetByID(in.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	saleItems, err := uc.repos.Sales.ListItems(in.SaleID)
	if err != nil {
		return nil, err
	}

	// Cantidad vendida y precio capturado por producto en la venta original.
	soldQty := make(map[int64]int64, len(saleItems))
	soldPrice := make(map[int64]decimal.Decimal, len(saleItems))
	for _, it := range saleItems {
		soldQty[it.ProductID] += it.Quantity
		soldPrice[it.ProductID] = it.UnitPrice
	}

	// La cantidad devuelta por producto no puede superar la vendida, sumando
	// líneas repetidas de la solicitud.
	requested := make(map[int64]int64, len(in.Items))
	items := make([]entity.ReturnItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 || line.Reason == "" {
			return nil, domain.ErrInvalidInput
		}
		sold, ok := soldQty[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: el producto %d no pertenece a la venta #%d", domain.ErrInvalidInput, line.ProductID, in.SaleID)
		}
		requested[line.ProductID] += line.Quantity
		if requested[line.ProductID] > sold {
			return nil, fmt.Errorf("%w: cantidad devuelta del producto %d supera la vendida", domain.ErrInvalidInput, line.ProductID)
		}
		items = append(items, entity.ReturnItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Reason:    line.Reason,
			Condition: line.Condition,
			UnitPrice: soldPrice[line.ProductID],
		})
	}

	ret := &entity.Return{
		SaleID:       in.SaleID,
		CustomerName: sale.CustomerName,
		Status:       entity.ReturnStatusSolicitada,
		Notes:        in.Notes,
		CreatedAt:    time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		return r.Returns.Create(ret, items)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ret, items, nil, nil)
}

// Process concluye una devolución "solicitada": reingresa cada línea en la
// ubicación indicada (por componentes si la línea es un kit) y crea la
// transacción financiera según la resolución. Re-procesar una devolución
// concluida falla con ErrInvalidState.
func (uc *ReturnUseCase) Process(ctx context.Context, returnID int64, in dto.ProcessReturnRequest) (*dto.ReturnResponse, error) {
	if in.Resolution != dto.ResolutionReembolso && in.Resolution != dto.ResolutionTroca {
		return nil, domain.ErrInvalidInput
	}
	if in.Resolution == dto.ResolutionTroca && len(in.ExchangeItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	location, err := uc.repos.Locations.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	var (
		ret          *entity.Return
		items        []entity.ReturnItem
		transaction  *entity.FinancialTransaction
		exchangeSale *dto.SaleResponse
	)
	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		ret, err = r.Returns.GetByID(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if ret.Status != entity.ReturnStatusSolicitada {
			return domain.ErrInvalidState
		}
		items, err = r.Returns.ListItems(returnID)
		if err != nil {
			return err
		}

		// Reingreso de stock línea por línea.
		groupID := uuid.New().String()
		label := fmt.Sprintf("Devolución #%d", ret.ID)
		for _, it := range items {
			product, err := r.Products.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.IsKit() {
				if err := uc.resolver.ApplyReturn(r, product, it.Quantity, in.LocationID, label, groupID); err != nil {
					return err
				}
			} else {
				if _, err := uc.ledger.RecordMovement(r, product, in.LocationID, it.Quantity, label, groupID); err != nil {
					return err
				}
			}
		}

		returnedValue := entity.ReturnTotal(items)
		now := time.Now()

		if in.Resolution == dto.ResolutionReembolso {
			transaction = &entity.FinancialTransaction{
				ReturnID:  ret.ID,
				Kind:      entity.TransactionKindReembolso,
				Amount:    returnedValue,
				CreatedAt: now,
			}
		} else {
			// Cambio: venta anidada de los artículos de reemplazo en la misma
			// ubicación y transacción.
			sale, saleItems, saleAlerts, err := uc.sales.RegisterSaleInTx(r, dto.CreateSaleRequest{
				CustomerName: ret.CustomerName,
				LocationID:   in.LocationID,
				Items:        in.ExchangeItems,
			})
			if err != nil {
				return err
			}
			exchangeSale, err = uc.sales.toResponse(sale, saleItems, inventory.AlertsToDTO(saleAlerts...))
			if err != nil {
				return err
			}
			ret.ExchangeSaleID = &sale.ID

			// Diferencia a pagar o a favor; una diferencia cero igualmente
			// produce una transacción de crédito por 0.
			diff := entity.SaleTotal(saleItems).Sub(returnedValue)
			if diff.GreaterThan(decimal.Zero) {
				transaction = &entity.FinancialTransaction{
					ReturnID: ret.ID, Kind: entity.TransactionKindPagamentoTroca, Amount: diff, CreatedAt: now,
				}
			} else {
				transaction = &entity.FinancialTransaction{
					ReturnID: ret.ID, Kind: entity.TransactionKindCredito, Amount: diff.Neg(), CreatedAt: now,
				}
			}
		}

		if err := r.Transactions.Create(transaction); err != nil {
			return err
		}
		ret.TransactionID = &transaction.ID
		ret.Status = entity.ReturnStatusConcluida
		return r.Returns.Update(ret)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ret, items, transaction, exchangeSale)
}

// GetByID devuelve una devolución con sus líneas y transacción.
func (uc *ReturnUseCase) GetByID(ctx context.Context, id int64) (*dto.ReturnResponse, error) {
	ret, err := uc.repos.Returns.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Returns.ListItems(id)
	if err != nil {
		return nil, err
	}
	transaction, err := uc.repos.Transactions.GetByReturn(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ret, items, transaction, nil)
}

// List lista devoluciones con paginación.
func (uc *ReturnUseCase) List(ctx context.Context, limit, offset int) (*dto.ReturnListResponse, error) {
	list, err := uc.repos.Returns.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReturnResponse, 0, len(list))
	for _, ret := range list {
		lines, err := uc.repos.Returns.ListItems(ret.ID)
		if err != nil {
			return nil, err
		}
		resp, err := uc.toResponse(ret, lines, nil, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.ReturnListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *ReturnUseCase) toResponse(
	ret *entity.Return,
	items []entity.ReturnItem,
	transaction *entity.FinancialTransaction,
	exchangeSale *dto.SaleResponse,
) (*dto.ReturnResponse, error) {
	lines := make([]dto.ReturnItemResponse, 0, len(items))
	for _, it := range items {
		lines = append(lines, dto.ReturnItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Reason:    it.Reason,
			Condition: it.Condition,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	resp := &dto.ReturnResponse{
		ID:            ret.ID,
		SaleID:        ret.SaleID,
		CustomerName:  ret.CustomerName,
		Status:        ret.Status,
		Notes:         ret.Notes,
		Items:         lines,
		TotalReturned: entity.ReturnTotal(items),
		ExchangeSale:  exchangeSale,
		CreatedAt:     ret.CreatedAt,
	}
	if transaction != nil {
		resp.Transaction = &dto.TransactionResponse{
			ID:        transaction.ID,
			Kind:      transaction.Kind,
			Amount:    transaction.Amount,
			CreatedAt: transaction.CreatedAt,
		}
	}
	return resp, nil
}
