package purchasing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/application/purchasing"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/infrastructure/memory"
)

type purchaseFixture struct {
	store *memory.Store
	repos *repository.Repos
	uc    *purchasing.PurchaseOrderUseCase
}

func newPurchaseFixture() *purchaseFixture {
	store := memory.NewStore()
	repos := store.Repos()
	uc := purchasing.NewPurchaseOrderUseCase(memory.NewTxRunner(store), repos, inventory.NewStockLedger())
	return &purchaseFixture{store: store, repos: repos, uc: uc}
}

func (f *purchaseFixture) supplier(t *testing.T, name string) *entity.Supplier {
	t.Helper()
	s := &entity.Supplier{Name: name}
	require.NoError(t, f.repos.Suppliers.Create(s))
	return s
}

func (f *purchaseFixture) location(t *testing.T, name string) *entity.Location {
	t.Helper()
	l := &entity.Location{Name: name}
	require.NoError(t, f.repos.Locations.Create(l))
	return l
}

func (f *purchaseFixture) product(t *testing.T, name string, supplierID int64, cost string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:         name,
		SupplierID:   supplierID,
		Kind:         entity.ProductKindIndividual,
		PurchaseCost: decimal.RequireFromString(cost),
		SalePrice:    decimal.RequireFromString(cost).Mul(decimal.NewFromInt(2)),
	}
	require.NoError(t, f.repos.Products.Create(p))
	return p
}

func (f *purchaseFixture) stockAt(t *testing.T, productID, locationID int64) int64 {
	t.Helper()
	st, err := f.repos.Stock.Get(productID, locationID)
	require.NoError(t, err)
	return st.Quantity
}

func TestCreate_CapturaCostoDelCatalogo(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	p := f.product(t, "Cable 2m", sup.ID, "10.50")

	resp, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPendiente, resp.Status)
	require.Len(t, resp.Items, 1)
	assert.True(t, decimal.RequireFromString("10.50").Equal(resp.Items[0].UnitCost))
	assert.True(t, decimal.RequireFromString("42.00").Equal(resp.Total), "total = %s", resp.Total)

	// Cambiar el costo del producto después no altera la línea capturada.
	p.PurchaseCost = decimal.RequireFromString("13.00")
	require.NoError(t, f.repos.Products.Update(p))
	got, err := f.uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.50").Equal(got.Items[0].UnitCost))
}

func TestCreate_KitRechazado(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	kit := &entity.Product{Name: "Kit Instalación", SupplierID: sup.ID, Kind: entity.ProductKindKit}
	require.NoError(t, f.repos.Products.Create(kit))

	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: kit.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestCreate_ProductoDeOtroProveedorRechazado(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	otro := f.supplier(t, "Distribuidora Sur")
	p := f.product(t, "Cable 2m", otro.ID, "10.50")

	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_SinLineasRechazada(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")

	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{SupplierID: sup.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceive_AcreditaStockYCambiaEstado(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	loc := f.location(t, "Bodega Central")
	a := f.product(t, "Cable 2m", sup.ID, "10.50")
	b := f.product(t, "Enchufe", sup.ID, "2.75")

	order, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items: []dto.PurchaseItemRequest{
			{ProductID: a.ID, Quantity: 10},
			{ProductID: b.ID, Quantity: 25},
		},
	})
	require.NoError(t, err)

	resp, err := f.uc.Receive(context.Background(), order.ID, dto.ReceiveOrderRequest{LocationID: loc.ID})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusRecibida, resp.Status)
	assert.Equal(t, int64(10), f.stockAt(t, a.ID, loc.ID))
	assert.Equal(t, int64(25), f.stockAt(t, b.ID, loc.ID))

	// Una entrada de ledger por línea, etiquetada con la orden.
	movs, err := f.repos.Movements.ListByProduct(a.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, fmt.Sprintf("Entrada OC #%d", order.ID), movs[0].Type)
	assert.Equal(t, int64(10), movs[0].Quantity)
}

func TestReceive_SoloDesdePendiente(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	loc := f.location(t, "Bodega")
	p := f.product(t, "Cable 2m", sup.ID, "10.50")

	order, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.uc.Receive(context.Background(), order.ID, dto.ReceiveOrderRequest{LocationID: loc.ID})
	require.NoError(t, err)

	// Re-recibir no duplica el stock.
	_, err = f.uc.Receive(context.Background(), order.ID, dto.ReceiveOrderRequest{LocationID: loc.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(5), f.stockAt(t, p.ID, loc.ID))
}

func TestReceive_CanceladaRechazada(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	loc := f.location(t, "Bodega")
	p := f.product(t, "Cable 2m", sup.ID, "10.50")

	order, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.uc.Receive(context.Background(), order.ID, dto.ReceiveOrderRequest{LocationID: loc.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(0), f.stockAt(t, p.ID, loc.ID))
}

func TestReceive_UbicacionInexistente(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	p := f.product(t, "Cable 2m", sup.ID, "10.50")

	order, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.uc.Receive(context.Background(), order.ID, dto.ReceiveOrderRequest{LocationID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_SoloPendiente(t *testing.T) {
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	loc := f.location(t, "Bodega")
	p := f.product(t, "Cable 2m", sup.ID, "10.50")

	order, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	resp, err := f.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelada, resp.Status)

	// Una orden recibida ya no puede cancelarse.
	order2, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	_, err = f.uc.Receive(context.Background(), order2.ID, dto.ReceiveOrderRequest{LocationID: loc.ID})
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), order2.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceive_DisparaAlertaSoloAlCruzar(t *testing.T) {
	// Recibir sube el stock; subir nunca cruza el punto de reorden hacia
	// abajo, así que una recepción no debe emitir alertas.
	f := newPurchaseFixture()
	sup := f.supplier(t, "Distribuidora Norte")
	loc := f.location(t, "Bodega")
	p := f.product(t, "Cable 2m", sup.ID, "10.50")
	p.ReorderPoint = 50
	require.NoError(t, f.repos.Products.Update(p))

	order, err := f.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: sup.ID,
		Items:      []dto.PurchaseItemRequest{{ProductID: p.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	resp, err := f.uc.Receive(context.Background(), order.ID, dto.ReceiveOrderRequest{LocationID: loc.ID})
	require.NoError(t, err)
	assert.Empty(t, resp.Alerts)
}
