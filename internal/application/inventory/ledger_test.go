package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	store  *memory.Store
	repos  *repository.Repos
	ledger *inventory.StockLedger
}

func newLedgerFixture() *ledgerFixture {
	store := memory.NewStore()
	return &ledgerFixture{
		store:  store,
		repos:  store.Repos(),
		ledger: inventory.NewStockLedger(),
	}
}

func (f *ledgerFixture) location(t *testing.T, name string) *entity.Location {
	t.Helper()
	l := &entity.Location{Name: name}
	require.NoError(t, f.repos.Locations.Create(l))
	return l
}

func (f *ledgerFixture) product(t *testing.T, name string, reorderPoint int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:         name,
		Kind:         entity.ProductKindIndividual,
		PurchaseCost: decimal.RequireFromString("10.00"),
		SalePrice:    decimal.RequireFromString("15.00"),
		ReorderPoint: reorderPoint,
	}
	require.NoError(t, f.repos.Products.Create(p))
	return p
}

func (f *ledgerFixture) stockAt(t *testing.T, productID, locationID int64) int64 {
	t.Helper()
	st, err := f.repos.Stock.Get(productID, locationID)
	require.NoError(t, err)
	return st.Quantity
}

func (f *ledgerFixture) record(t *testing.T, p *entity.Product, locID, qty int64) *inventory.Alert {
	t.Helper()
	alert, err := f.ledger.RecordMovement(f.repos, p, locID, qty, "Ajuste manual", "g1")
	require.NoError(t, err)
	return alert
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaYSalida(t *testing.T) {
	f := newLedgerFixture()
	loc := f.location(t, "Bodega Central")
	p := f.product(t, "Tornillo", 0)

	f.record(t, p, loc.ID, 10)
	assert.Equal(t, int64(10), f.stockAt(t, p.ID, loc.ID))

	f.record(t, p, loc.ID, -4)
	assert.Equal(t, int64(6), f.stockAt(t, p.ID, loc.ID))

	movs, err := f.repos.Movements.ListByProduct(p.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	// Más reciente primero.
	assert.Equal(t, int64(-4), movs[0].Quantity)
	assert.Equal(t, int64(10), movs[1].Quantity)
	assert.Equal(t, "Ajuste manual", movs[0].Type)
}

func TestRecordMovement_SalidaInsuficiente(t *testing.T) {
	f := newLedgerFixture()
	loc := f.location(t, "Bodega")
	p := f.product(t, "Tuerca", 0)
	f.record(t, p, loc.ID, 3)

	_, err := f.ledger.RecordMovement(f.repos, p, loc.ID, -5, "Ajuste manual", "g2")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock y el historial quedan intactos.
	assert.Equal(t, int64(3), f.stockAt(t, p.ID, loc.ID))
	movs, err := f.repos.Movements.ListByProduct(p.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestRecordMovement_SuficienciaPorUbicacion(t *testing.T) {
	// El total global no salva a una ubicación sin stock suficiente.
	f := newLedgerFixture()
	locA := f.location(t, "Bodega A")
	locB := f.location(t, "Bodega B")
	p := f.product(t, "Cable", 0)
	f.record(t, p, locA.ID, 2)
	f.record(t, p, locB.ID, 10)

	_, err := f.ledger.RecordMovement(f.repos, p, locA.ID, -5, "Ajuste manual", "g3")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.stockAt(t, p.ID, locA.ID))
}

func TestRecordMovement_AlertaPorFlanco(t *testing.T) {
	f := newLedgerFixture()
	loc := f.location(t, "Bodega")
	p := f.product(t, "Filtro", 9)

	// Entrada inicial: no cruza hacia abajo, sin alerta.
	assert.Nil(t, f.record(t, p, loc.ID, 15))

	// 15 → 8 cruza el punto de reorden: alerta con el total resultante.
	alert := f.record(t, p, loc.ID, -7)
	require.NotNil(t, alert)
	assert.Equal(t, p.ID, alert.Product.ID)
	assert.Equal(t, int64(8), alert.TotalStock)

	// 8 → 5 sigue abajo: no re-alerta.
	assert.Nil(t, f.record(t, p, loc.ID, -3))

	// Reposición 5 → 12: subir no alerta.
	assert.Nil(t, f.record(t, p, loc.ID, 7))

	// 12 → 9 vuelve a cruzar: alerta de nuevo.
	alert = f.record(t, p, loc.ID, -3)
	require.NotNil(t, alert)
	assert.Equal(t, int64(9), alert.TotalStock)
}

func TestRecordMovement_AlertaMiraTotalGlobal(t *testing.T) {
	// El flanco se evalúa sobre el total de todas las ubicaciones, no el de
	// la ubicación movida.
	f := newLedgerFixture()
	locA := f.location(t, "Bodega A")
	locB := f.location(t, "Bodega B")
	p := f.product(t, "Sensor", 9)
	f.record(t, p, locA.ID, 6)
	f.record(t, p, locB.ID, 6)

	// Total 12 → 10: sin alerta aunque la ubicación quede en 2.
	assert.Nil(t, f.record(t, p, locA.ID, -4))

	// Total 10 → 8: cruza.
	alert := f.record(t, p, locB.ID, -2)
	require.NotNil(t, alert)
	assert.Equal(t, int64(8), alert.TotalStock)
}

func TestRecordMovement_CantidadCeroRechazada(t *testing.T) {
	f := newLedgerFixture()
	loc := f.location(t, "Bodega")
	p := f.product(t, "Caja", 0)

	_, err := f.ledger.RecordMovement(f.repos, p, loc.ID, 0, "Ajuste manual", "g4")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_EtiquetaVaciaRechazada(t *testing.T) {
	f := newLedgerFixture()
	loc := f.location(t, "Bodega")
	p := f.product(t, "Caja", 0)

	_, err := f.ledger.RecordMovement(f.repos, p, loc.ID, 5, "", "g5")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_KitRechazado(t *testing.T) {
	f := newLedgerFixture()
	loc := f.location(t, "Bodega")
	kit := &entity.Product{Name: "Kit Básico", Kind: entity.ProductKindKit}
	require.NoError(t, f.repos.Products.Create(kit))

	_, err := f.ledger.RecordMovement(f.repos, kit, loc.ID, 5, "Ajuste manual", "g6")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}
