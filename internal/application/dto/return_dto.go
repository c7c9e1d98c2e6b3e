package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resoluciones posibles al procesar una devolución.
const (
	ResolutionReembolso = "reembolso"
	ResolutionTroca     = "troca"
)

// ReturnItemRequest una línea devuelta.
type ReturnItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
	Condition string `json:"condition"`
}

// InitiateReturnRequest body para POST /api/returns (fase 1: sin efecto de
// stock ni financiero).
type InitiateReturnRequest struct {
	SaleID int64               `json:"sale_id"`
	Items  []ReturnItemRequest `json:"items"`
	Notes  string              `json:"notes,omitempty"`
}

// ProcessReturnRequest body para POST /api/returns/:id/process (fase 2).
// Resolution: "reembolso" o "troca"; ExchangeItems solo aplica a troca.
type ProcessReturnRequest struct {
	LocationID    int64             `json:"location_id"`
	Resolution    string            `json:"resolution"`
	ExchangeItems []SaleItemRequest `json:"exchange_items,omitempty"`
}

// TransactionResponse transacción financiera de una devolución concluida.
type TransactionResponse struct {
	ID        int64           `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReturnItemResponse una línea devuelta con su valor.
type ReturnItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Reason    string          `json:"reason"`
	Condition string          `json:"condition"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ReturnResponse devolución con líneas, transacción y venta de cambio si las hay.
type ReturnResponse struct {
	ID            int64                `json:"id"`
	SaleID        int64                `json:"sale_id"`
	CustomerName  string               `json:"customer_name"`
	Status        string               `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	Items         []ReturnItemResponse `json:"items"`
	TotalReturned decimal.Decimal      `json:"total_returned"`
	Transaction   *TransactionResponse `json:"transaction,omitempty"`
	ExchangeSale  *SaleResponse        `json:"exchange_sale,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ReturnListResponse listado paginado de devoluciones.
type ReturnListResponse struct {
	Items []ReturnResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
