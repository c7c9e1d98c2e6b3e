package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type catalogFixture struct {
	store      *memory.Store
	repos      *repository.Repos
	ledger     *inventory.StockLedger
	productUC  *usecase.ProductUseCase
	locationUC *usecase.LocationUseCase
	supplierUC *usecase.SupplierUseCase
	supplierID int64
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	ledger := inventory.NewStockLedger()
	resolver := inventory.NewKitResolver(ledger)
	sup := &entity.Supplier{Name: "Proveedor Base"}
	require.NoError(t, repos.Suppliers.Create(sup))
	return &catalogFixture{
		store:      store,
		repos:      repos,
		ledger:     ledger,
		productUC:  usecase.NewProductUseCase(tx, repos, resolver),
		locationUC: usecase.NewLocationUseCase(tx, repos),
		supplierUC: usecase.NewSupplierUseCase(tx, repos, resolver),
		supplierID: sup.ID,
	}
}

func (f *catalogFixture) individual(t *testing.T, name, cost string, reorder int64) *dto.ProductResponse {
	t.Helper()
	resp, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name:         name,
		SupplierID:   f.supplierID,
		PurchaseCost: decimal.RequireFromString(cost),
		SalePrice:    decimal.RequireFromString(cost).Mul(decimal.NewFromInt(2)),
		ReorderPoint: reorder,
	})
	require.NoError(t, err)
	return resp
}

func (f *catalogFixture) kit(t *testing.T, name string) *dto.ProductResponse {
	t.Helper()
	resp, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name:       name,
		SupplierID: f.supplierID,
		Kind:       entity.ProductKindKit,
		SalePrice:  decimal.RequireFromString("30.00"),
	})
	require.NoError(t, err)
	return resp
}

func (f *catalogFixture) seed(t *testing.T, productID, locationID, qty int64) {
	t.Helper()
	p, err := f.repos.Products.GetByID(productID)
	require.NoError(t, err)
	_, err = f.ledger.RecordMovement(f.repos, p, locationID, qty, "Entrada inicial", "seed")
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_KitInicializaDerivados(t *testing.T) {
	f := newCatalogFixture(t)

	resp, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Kit Pintura",
		SupplierID:   f.supplierID,
		Kind:         entity.ProductKindKit,
		PurchaseCost: decimal.RequireFromString("99.00"),
		SalePrice:    decimal.RequireFromString("50.00"),
		ReorderPoint: 5,
	})
	require.NoError(t, err)

	// El costo de un kit es derivado y el punto de reorden no aplica:
	// ambos se ignoran en la creación.
	assert.True(t, resp.PurchaseCost.IsZero(), "costo inicial del kit = %s", resp.PurchaseCost)
	assert.Equal(t, int64(0), resp.ReorderPoint)
	assert.Equal(t, int64(0), resp.TotalStock)
}

func TestCreateProduct_TipoInvalido(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Raro",
		SupplierID: f.supplierID,
		Kind:       "bundle",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProduct_ProveedorInexistente(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Cinta",
		SupplierID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProduct_CostoDeKitNoEditable(t *testing.T) {
	f := newCatalogFixture(t)
	kit := f.kit(t, "Kit Jardín")

	cost := decimal.RequireFromString("12.00")
	_, err := f.productUC.Update(context.Background(), kit.ID, dto.UpdateProductRequest{PurchaseCost: &cost})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestGetStock_KitRechazado(t *testing.T) {
	f := newCatalogFixture(t)
	kit := f.kit(t, "Kit Jardín")

	_, err := f.productUC.GetStock(context.Background(), kit.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Kits
// ──────────────────────────────────────────────────────────────────────────────

func TestDefineKit_DerivaCostoYCapacidad(t *testing.T) {
	f := newCatalogFixture(t)
	loc := &entity.Location{Name: "Bodega"}
	require.NoError(t, f.repos.Locations.Create(loc))
	p := f.individual(t, "Shampoo", "10.50", 0)
	q := f.individual(t, "Acondicionador", "4.25", 0)
	kit := f.kit(t, "Kit Cuidado")
	f.seed(t, p.ID, loc.ID, 8)
	f.seed(t, q.ID, loc.ID, 3)

	resp, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{
			{ProductID: p.ID, QtyPerKit: 2},
			{ProductID: q.ID, QtyPerKit: 1},
		},
	})
	require.NoError(t, err)

	// Costo derivado 2×10.50 + 1×4.25 = 25.25; capacidad min(8/2, 3/1) = 3.
	assert.True(t, decimal.RequireFromString("25.25").Equal(resp.UnitCost), "costo = %s", resp.UnitCost)
	assert.Equal(t, int64(3), resp.Capacity)
	require.Len(t, resp.Components, 2)
	assert.Equal(t, int64(8), resp.Components[0].TotalStock)

	// El costo derivado queda persistido en el producto.
	stored, err := f.repos.Products.GetByID(kit.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.25").Equal(stored.PurchaseCost))

	// Y el producto lo reporta junto con la capacidad.
	got, err := f.productUC.GetByID(context.Background(), kit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalStock)
	assert.True(t, decimal.RequireFromString("25.25").Equal(got.PurchaseCost))
}

func TestDefineKit_RedefinirRecalculaCosto(t *testing.T) {
	f := newCatalogFixture(t)
	p := f.individual(t, "Shampoo", "10.50", 0)
	q := f.individual(t, "Acondicionador", "4.25", 0)
	kit := f.kit(t, "Kit Cuidado")

	_, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{
			{ProductID: p.ID, QtyPerKit: 2},
			{ProductID: q.ID, QtyPerKit: 1},
		},
	})
	require.NoError(t, err)

	resp, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{{ProductID: q.ID, QtyPerKit: 3}},
	})
	require.NoError(t, err)

	// 3 × 4.25 = 12.75; la composición anterior quedó sustituida.
	assert.True(t, decimal.RequireFromString("12.75").Equal(resp.UnitCost), "costo = %s", resp.UnitCost)
	require.Len(t, resp.Components, 1)
	assert.Equal(t, q.ID, resp.Components[0].ProductID)
}

func TestDefineKit_ListaVaciaRechazada(t *testing.T) {
	f := newCatalogFixture(t)
	kit := f.kit(t, "Kit Cuidado")

	_, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefineKit_ComponenteDuplicadoRechazado(t *testing.T) {
	f := newCatalogFixture(t)
	p := f.individual(t, "Shampoo", "10.50", 0)
	kit := f.kit(t, "Kit Cuidado")

	_, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{
			{ProductID: p.ID, QtyPerKit: 1},
			{ProductID: p.ID, QtyPerKit: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefineKit_CantidadNoPositivaRechazada(t *testing.T) {
	f := newCatalogFixture(t)
	p := f.individual(t, "Shampoo", "10.50", 0)
	kit := f.kit(t, "Kit Cuidado")

	_, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{{ProductID: p.ID, QtyPerKit: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefineKit_KitAnidadoRechazado(t *testing.T) {
	f := newCatalogFixture(t)
	inner := f.kit(t, "Kit Interior")
	outer := f.kit(t, "Kit Exterior")

	_, err := f.productUC.DefineKit(context.Background(), outer.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{{ProductID: inner.ID, QtyPerKit: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestDefineKit_SobreProductoIndividualRechazado(t *testing.T) {
	f := newCatalogFixture(t)
	p := f.individual(t, "Shampoo", "10.50", 0)
	otro := f.individual(t, "Jabón", "2.00", 0)

	_, err := f.productUC.DefineKit(context.Background(), p.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{{ProductID: otro.ID, QtyPerKit: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación en cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_CascadaCompleta(t *testing.T) {
	f := newCatalogFixture(t)
	loc := &entity.Location{Name: "Bodega"}
	require.NoError(t, f.repos.Locations.Create(loc))
	p := f.individual(t, "Shampoo", "10.50", 0)
	q := f.individual(t, "Acondicionador", "4.25", 0)
	kit := f.kit(t, "Kit Cuidado")
	f.seed(t, p.ID, loc.ID, 8)
	_, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{
			{ProductID: p.ID, QtyPerKit: 2},
			{ProductID: q.ID, QtyPerKit: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.productUC.Delete(context.Background(), p.ID))

	// Producto, stock, movimientos y membresía de kit desaparecen juntos.
	_, err = f.productUC.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	total, err := f.repos.Stock.TotalByProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	movs, err := f.repos.Movements.ListByProduct(p.ID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
	comps, err := f.repos.Kits.ListByKit(kit.ID)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, q.ID, comps[0].ComponentID)
}

func TestDeleteSupplier_ArrastraSusProductos(t *testing.T) {
	f := newCatalogFixture(t)
	loc := &entity.Location{Name: "Bodega"}
	require.NoError(t, f.repos.Locations.Create(loc))
	p := f.individual(t, "Shampoo", "10.50", 0)
	f.seed(t, p.ID, loc.ID, 5)

	require.NoError(t, f.supplierUC.Delete(context.Background(), f.supplierID))

	_, err := f.supplierUC.GetByID(context.Background(), f.supplierID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.productUC.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	total, err := f.repos.Stock.TotalByProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestDeleteProduct_RecalculaCostoDeKitsAfectados(t *testing.T) {
	f := newCatalogFixture(t)
	a := f.individual(t, "Brocha", "10.00", 0)
	b := f.individual(t, "Rodillo", "4.00", 0)
	kit := f.kit(t, "Kit Pintura")
	_, err := f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{
			{ProductID: a.ID, QtyPerKit: 2},
			{ProductID: b.ID, QtyPerKit: 1},
		},
	})
	require.NoError(t, err)

	stored, err := f.repos.Products.GetByID(kit.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("24.00").Equal(stored.PurchaseCost), "costo = %s", stored.PurchaseCost)

	require.NoError(t, f.productUC.Delete(context.Background(), a.ID))

	// El costo persistido del kit sigue a la composición restante (1 × 4.00).
	stored, err = f.repos.Products.GetByID(kit.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.00").Equal(stored.PurchaseCost), "costo = %s", stored.PurchaseCost)
	comps, err := f.repos.Kits.ListByKit(kit.ID)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, b.ID, comps[0].ComponentID)
}

func TestDeleteSupplier_RecalculaCostoDeKitsAjenos(t *testing.T) {
	f := newCatalogFixture(t)
	otro := &entity.Supplier{Name: "Proveedor Ajeno"}
	require.NoError(t, f.repos.Suppliers.Create(otro))

	// El componente A pertenece al proveedor que se elimina; B y el kit
	// pertenecen a otro proveedor y sobreviven a la cascada.
	a := f.individual(t, "Brocha", "10.00", 0)
	b, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Rodillo",
		SupplierID:   otro.ID,
		PurchaseCost: decimal.RequireFromString("4.00"),
		SalePrice:    decimal.RequireFromString("8.00"),
	})
	require.NoError(t, err)
	kit, err := f.productUC.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Kit Pintura",
		SupplierID: otro.ID,
		Kind:       entity.ProductKindKit,
		SalePrice:  decimal.RequireFromString("30.00"),
	})
	require.NoError(t, err)
	_, err = f.productUC.DefineKit(context.Background(), kit.ID, dto.DefineKitRequest{
		Components: []dto.KitComponentRequest{
			{ProductID: a.ID, QtyPerKit: 2},
			{ProductID: b.ID, QtyPerKit: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.supplierUC.Delete(context.Background(), f.supplierID))

	stored, err := f.repos.Products.GetByID(kit.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, decimal.RequireFromString("4.00").Equal(stored.PurchaseCost), "costo = %s", stored.PurchaseCost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLocation_NombreDuplicado(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.locationUC.Create(context.Background(), dto.CreateLocationRequest{Name: "Bodega Central"})
	require.NoError(t, err)

	_, err = f.locationUC.Create(context.Background(), dto.CreateLocationRequest{Name: "Bodega Central"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateLocation_RenombreANombreTomado(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.locationUC.Create(context.Background(), dto.CreateLocationRequest{Name: "Bodega A"})
	require.NoError(t, err)
	b, err := f.locationUC.Create(context.Background(), dto.CreateLocationRequest{Name: "Bodega B"})
	require.NoError(t, err)

	name := "Bodega A"
	_, err = f.locationUC.Update(context.Background(), b.ID, dto.UpdateLocationRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDeleteLocation_ConStockPositivoRechazada(t *testing.T) {
	f := newCatalogFixture(t)
	loc, err := f.locationUC.Create(context.Background(), dto.CreateLocationRequest{Name: "Bodega"})
	require.NoError(t, err)
	p := f.individual(t, "Shampoo", "10.50", 0)
	f.seed(t, p.ID, loc.ID, 5)

	err = f.locationUC.Delete(context.Background(), loc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Vaciada la ubicación, la eliminación procede.
	prod, err := f.repos.Products.GetByID(p.ID)
	require.NoError(t, err)
	_, err = f.ledger.RecordMovement(f.repos, prod, loc.ID, -5, "Salida total", "g1")
	require.NoError(t, err)
	assert.NoError(t, f.locationUC.Delete(context.Background(), loc.ID))
}
