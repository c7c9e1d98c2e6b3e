package sales_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// sell registra una venta de apoyo y devuelve su respuesta.
func (f *salesFixture) sell(t *testing.T, locID int64, items ...dto.SaleItemRequest) *dto.SaleResponse {
	t.Helper()
	resp, err := f.saleUC.RegisterSale(context.Background(), dto.CreateSaleRequest{
		CustomerName: "Cliente Test",
		LocationID:   locID,
		Items:        items,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Initiate
// ──────────────────────────────────────────────────────────────────────────────

func TestInitiate_SolicitadaSinEfectoDeStock(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Plancha", "20.00", "45.00")
	f.seed(t, p, loc.ID, 10)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 3})

	resp, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: p.ID, Quantity: 2, Reason: "defecto de fábrica", Condition: "con defecto"}},
		Notes:  "cliente trajo el empaque original",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReturnStatusSolicitada, resp.Status)
	assert.Equal(t, sale.ID, resp.SaleID)
	require.Len(t, resp.Items, 1)
	// El precio capturado viene de la línea de venta original.
	assertDecimal(t, "45.00", resp.Items[0].UnitPrice)
	assertDecimal(t, "90.00", resp.TotalReturned)
	assert.Nil(t, resp.Transaction)

	// Iniciar no toca el stock: sigue en 7 tras la venta.
	assert.Equal(t, int64(7), f.stockAt(t, p.ID, loc.ID))
}

func TestInitiate_PrecioDeVentaAunqueElCatalogoCambie(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Licuadora", "30.00", "80.00")
	f.seed(t, p, loc.ID, 5)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 1})

	p.SalePrice = decimal.RequireFromString("95.00")
	require.NoError(t, f.repos.Products.Update(p))

	resp, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: p.ID, Quantity: 1, Reason: "no enciende"}},
	})
	require.NoError(t, err)
	assertDecimal(t, "80.00", resp.Items[0].UnitPrice)
}

func TestInitiate_CantidadSuperaVendida(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Olla", "15.00", "35.00")
	f.seed(t, p, loc.ID, 10)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 3})

	_, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: p.ID, Quantity: 4, Reason: "sobra"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInitiate_LineasRepetidasSumanContraLoVendido(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Olla", "15.00", "35.00")
	f.seed(t, p, loc.ID, 10)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 3})

	_, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items: []dto.ReturnItemRequest{
			{ProductID: p.ID, Quantity: 2, Reason: "defecto"},
			{ProductID: p.ID, Quantity: 2, Reason: "defecto"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInitiate_ProductoAjenoALaVenta(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Olla", "15.00", "35.00")
	otro := f.individual(t, "Sartén", "12.00", "28.00")
	f.seed(t, p, loc.ID, 10)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 1})

	_, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: otro.ID, Quantity: 1, Reason: "error"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInitiate_MotivoObligatorio(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Olla", "15.00", "35.00")
	f.seed(t, p, loc.ID, 10)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 1})

	_, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Process
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_ReembolsoReingresaYTransacciona(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Plancha", "20.00", "45.00")
	f.seed(t, p, loc.ID, 10)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 3})

	ret, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: p.ID, Quantity: 2, Reason: "defecto"}},
	})
	require.NoError(t, err)

	resp, err := f.returnUC.Process(context.Background(), ret.ID, dto.ProcessReturnRequest{
		LocationID: loc.ID,
		Resolution: dto.ResolutionReembolso,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReturnStatusConcluida, resp.Status)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, entity.TransactionKindReembolso, resp.Transaction.Kind)
	assertDecimal(t, "90.00", resp.Transaction.Amount)
	assert.Nil(t, resp.ExchangeSale)

	// Stock reingresado: 10 - 3 + 2 = 9.
	assert.Equal(t, int64(9), f.stockAt(t, p.ID, loc.ID))
	movs, err := f.repos.Movements.ListByProduct(p.ID, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Devolución #%d", ret.ID), movs[0].Type)
	assert.Equal(t, int64(2), movs[0].Quantity)
}

func TestProcess_ReprocesarConcluidaFalla(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Plancha", "20.00", "45.00")
	f.seed(t, p, loc.ID, 10)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: p.ID, Quantity: 1})

	ret, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: p.ID, Quantity: 1, Reason: "defecto"}},
	})
	require.NoError(t, err)

	_, err = f.returnUC.Process(context.Background(), ret.ID, dto.ProcessReturnRequest{
		LocationID: loc.ID,
		Resolution: dto.ResolutionReembolso,
	})
	require.NoError(t, err)

	_, err = f.returnUC.Process(context.Background(), ret.ID, dto.ProcessReturnRequest{
		LocationID: loc.ID,
		Resolution: dto.ResolutionReembolso,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// El reingreso no se duplicó.
	assert.Equal(t, int64(10), f.stockAt(t, p.ID, loc.ID))
}

func TestProcess_TrocaConDiferenciaAPagar(t *testing.T) {
	// Devuelto 50.00, reemplazo 70.00: el cliente paga 20.00.
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	a := f.individual(t, "Camisa", "20.00", "50.00")
	b := f.individual(t, "Chaqueta", "30.00", "70.00")
	f.seed(t, a, loc.ID, 5)
	f.seed(t, b, loc.ID, 5)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: a.ID, Quantity: 1})

	ret, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: a.ID, Quantity: 1, Reason: "talla equivocada", Condition: "nuevo"}},
	})
	require.NoError(t, err)

	resp, err := f.returnUC.Process(context.Background(), ret.ID, dto.ProcessReturnRequest{
		LocationID:    loc.ID,
		Resolution:    dto.ResolutionTroca,
		ExchangeItems: []dto.SaleItemRequest{{ProductID: b.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Transaction)
	assert.Equal(t, entity.TransactionKindPagamentoTroca, resp.Transaction.Kind)
	assertDecimal(t, "20.00", resp.Transaction.Amount)

	// Venta anidada persistida con su propio débito.
	require.NotNil(t, resp.ExchangeSale)
	assertDecimal(t, "70.00", resp.ExchangeSale.Total)
	assert.Equal(t, int64(5), f.stockAt(t, a.ID, loc.ID)) // 5 - 1 + 1
	assert.Equal(t, int64(4), f.stockAt(t, b.ID, loc.ID))
}

func TestProcess_TrocaConSaldoAFavor(t *testing.T) {
	// Devuelto 50.00, reemplazo 28.00: crédito de 22.00 a favor.
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	a := f.individual(t, "Camisa", "20.00", "50.00")
	b := f.individual(t, "Gorra", "10.00", "28.00")
	f.seed(t, a, loc.ID, 5)
	f.seed(t, b, loc.ID, 5)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: a.ID, Quantity: 1})

	ret, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: a.ID, Quantity: 1, Reason: "cambio de opinión"}},
	})
	require.NoError(t, err)

	resp, err := f.returnUC.Process(context.Background(), ret.ID, dto.ProcessReturnRequest{
		LocationID:    loc.ID,
		Resolution:    dto.ResolutionTroca,
		ExchangeItems: []dto.SaleItemRequest{{ProductID: b.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Transaction)
	assert.Equal(t, entity.TransactionKindCredito, resp.Transaction.Kind)
	assertDecimal(t, "22.00", resp.Transaction.Amount)
}

func TestProcess_TrocaExactaEsCreditoCero(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	a := f.individual(t, "Camisa Azul", "20.00", "50.00")
	b := f.individual(t, "Camisa Roja", "20.00", "50.00")
	f.seed(t, a, loc.ID, 5)
	f.seed(t, b, loc.ID, 5)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: a.ID, Quantity: 1})

	ret, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: a.ID, Quantity: 1, Reason: "color equivocado"}},
	})
	require.NoError(t, err)

	resp, err := f.returnUC.Process(context.Background(), ret.ID, dto.ProcessReturnRequest{
		LocationID:    loc.ID,
		Resolution:    dto.ResolutionTroca,
		ExchangeItems: []dto.SaleItemRequest{{ProductID: b.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Transaction)
	assert.Equal(t, entity.TransactionKindCredito, resp.Transaction.Kind)
	assert.True(t, resp.Transaction.Amount.IsZero(), "diferencia exacta debe registrar crédito de 0")
}

func TestProcess_TrocaSinItemsRechazada(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")

	_, err := f.returnUC.Process(context.Background(), 1, dto.ProcessReturnRequest{
		LocationID: loc.ID,
		Resolution: dto.ResolutionTroca,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcess_ResolucionDesconocidaRechazada(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")

	_, err := f.returnUC.Process(context.Background(), 1, dto.ProcessReturnRequest{
		LocationID: loc.ID,
		Resolution: "abono",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcess_DevolucionDeKitReingresaComponentes(t *testing.T) {
	f := newSalesFixture()
	loc := f.location(t, "Tienda")
	p := f.individual(t, "Shampoo", "10.50", "18.00")
	q := f.individual(t, "Acondicionador", "4.25", "9.00")
	kit := f.kit(t, "Kit Cuidado", "30.00",
		entity.KitComponent{ComponentID: p.ID, QtyPerKit: 2},
		entity.KitComponent{ComponentID: q.ID, QtyPerKit: 1},
	)
	f.seed(t, p, loc.ID, 8)
	f.seed(t, q, loc.ID, 3)
	sale := f.sell(t, loc.ID, dto.SaleItemRequest{ProductID: kit.ID, Quantity: 2})

	ret, err := f.returnUC.Initiate(context.Background(), dto.InitiateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: kit.ID, Quantity: 1, Reason: "incompleto"}},
	})
	require.NoError(t, err)

	_, err = f.returnUC.Process(context.Background(), ret.ID, dto.ProcessReturnRequest{
		LocationID: loc.ID,
		Resolution: dto.ResolutionReembolso,
	})
	require.NoError(t, err)

	// Venta: P 8-4=4, Q 3-2=1. Devolución de 1 kit: P +2, Q +1.
	assert.Equal(t, int64(6), f.stockAt(t, p.ID, loc.ID))
	assert.Equal(t, int64(2), f.stockAt(t, q.ID, loc.ID))
}
