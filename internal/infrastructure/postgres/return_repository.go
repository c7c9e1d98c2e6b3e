package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste la devolución con sus líneas; asigna los IDs generados.
func (r *ReturnRepo) Create(ret *entity.Return, items []entity.ReturnItem) error {
	ctx := context.Background()
	err := r.q.QueryRow(ctx, `
		INSERT INTO returns (sale_id, customer_name, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		ret.SaleID, ret.CustomerName, ret.Status, ret.Notes, ret.CreatedAt,
	).Scan(&ret.ID)
	if err != nil {
		return fmt.Errorf("create return: %w", err)
	}
	query := `
		INSERT INTO return_items (return_id, product_id, quantity, reason, condition, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range items {
		items[i].ReturnID = ret.ID
		err := r.q.QueryRow(ctx, query,
			ret.ID, items[i].ProductID, items[i].Quantity,
			items[i].Reason, items[i].Condition, items[i].UnitPrice,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("create return item: %w", err)
		}
	}
	return nil
}

const returnColumns = `id, sale_id, customer_name, status, notes, transaction_id, exchange_sale_id, created_at`

// GetByID obtiene una devolución; nil si no existe.
func (r *ReturnRepo) GetByID(id int64) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	var ret entity.Return
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.SaleID, &ret.CustomerName, &ret.Status, &ret.Notes,
		&ret.TransactionID, &ret.ExchangeSaleID, &ret.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return &ret, nil
}

// ListItems devuelve las líneas de la devolución.
func (r *ReturnRepo) ListItems(returnID int64) ([]entity.ReturnItem, error) {
	query := `
		SELECT id, return_id, product_id, quantity, reason, condition, unit_price
		FROM return_items WHERE return_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()

	var list []entity.ReturnItem
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity, &it.Reason, &it.Condition, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update persiste status, notas y los enlaces a transacción / venta de cambio.
func (r *ReturnRepo) Update(ret *entity.Return) error {
	query := `
		UPDATE returns
		SET status = $2, notes = $3, transaction_id = $4, exchange_sale_id = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.Status, ret.Notes, ret.TransactionID, ret.ExchangeSaleID,
	)
	if err != nil {
		return fmt.Errorf("update return: %w", err)
	}
	return nil
}

// List lista devoluciones, más reciente primero.
func (r *ReturnRepo) List(limit, offset int) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var list []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(
			&ret.ID, &ret.SaleID, &ret.CustomerName, &ret.Status, &ret.Notes,
			&ret.TransactionID, &ret.ExchangeSaleID, &ret.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la transacción financiera y asigna el ID generado.
func (r *TransactionRepo) Create(tx *entity.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (return_id, kind, amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		tx.ReturnID, tx.Kind, tx.Amount, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByReturn obtiene la transacción de una devolución; nil si aún no existe.
func (r *TransactionRepo) GetByReturn(returnID int64) (*entity.FinancialTransaction, error) {
	query := `SELECT id, return_id, kind, amount, created_at FROM financial_transactions WHERE return_id = $1`
	var tx entity.FinancialTransaction
	err := r.q.QueryRow(context.Background(), query, returnID).Scan(
		&tx.ID, &tx.ReturnID, &tx.Kind, &tx.Amount, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}
