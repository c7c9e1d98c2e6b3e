package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera asociada a una devolución.
const (
	TransactionKindReembolso      = "reembolso"       // devolución simple
	TransactionKindCredito        = "credito"         // cambio con saldo a favor del cliente
	TransactionKindPagamentoTroca = "pagamento_troca" // cambio con diferencia a pagar
)

// FinancialTransaction registra el movimiento financiero de una devolución
// concluida. Se crea exactamente una por devolución.
type FinancialTransaction struct {
	ID        int64
	ReturnID  int64
	Kind      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
