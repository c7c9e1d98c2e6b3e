package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo: CRUD de productos, composición de
// kits y consulta de stock. Las cantidades las muta solo el ledger; aquí solo
// se leen.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repos    *repository.Repos
	resolver *inventory.KitResolver
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repos *repository.Repos, resolver *inventory.KitResolver) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repos: repos, resolver: resolver}
}

// Create crea un producto. Kind default "individual"; para kits el costo de
// compra inicia en 0 (se deriva de los componentes al definir la composición)
// y el punto de ressuprimento no aplica.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SalePrice.IsNegative() || in.PurchaseCost.IsNegative() || in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidInput
	}
	kind := in.Kind
	if kind == "" {
		kind = entity.ProductKindIndividual
	}
	if kind != entity.ProductKindIndividual && kind != entity.ProductKindKit {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.repos.Suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Barcode:      in.Barcode,
		SupplierID:   in.SupplierID,
		Kind:         kind,
		PurchaseCost: in.PurchaseCost,
		SalePrice:    in.SalePrice,
		ReorderPoint: in.ReorderPoint,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if kind == entity.ProductKindKit {
		product.PurchaseCost = decimal.Zero
		product.ReorderPoint = 0
	}
	if err := uc.repos.Products.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// GetByID obtiene un producto; para kits el stock reportado es la capacidad
// derivada y el costo se recalcula al vuelo.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product)
}

// GetByBarcode busca un producto por código de barras.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repos.Products.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product)
}

// Update actualiza metadatos y precios; Kind no es editable.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.SupplierID != nil {
		supplier, err := uc.repos.Suppliers.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		product.SupplierID = *in.SupplierID
	}
	if in.PurchaseCost != nil {
		if product.IsKit() {
			// El costo de un kit es derivado; no se edita directamente.
			return nil, domain.ErrInvalidOperation
		}
		if in.PurchaseCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchaseCost = *in.PurchaseCost
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	product.UpdatedAt = time.Now()
	if err := uc.repos.Products.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repos.Products.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina un producto con la cascada propia del núcleo: membresías de
// kit, filas de stock y movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		product, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		return cascadeDeleteProduct(r, uc.resolver, id)
	})
}

// DefineKit reemplaza la composición completa del kit y recalcula su costo
// derivado. Una lista vacía se rechaza: limpiar un kit exige una intención
// explícita distinta de "redefinir".
func (uc *ProductUseCase) DefineKit(ctx context.Context, kitID int64, in dto.DefineKitRequest) (*dto.KitResponse, error) {
	if len(in.Components) == 0 {
		return nil, domain.ErrInvalidInput
	}
	kit, err := uc.repos.Products.GetByID(kitID)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	if !kit.IsKit() {
		return nil, domain.ErrInvalidOperation
	}

	seen := make(map[int64]bool, len(in.Components))
	components := make([]entity.KitComponent, 0, len(in.Components))
	for i, c := range in.Components {
		if c.QtyPerKit <= 0 || seen[c.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[c.ProductID] = true
		component, err := uc.repos.Products.GetByID(c.ProductID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, domain.ErrNotFound
		}
		if component.IsKit() {
			// Un kit no puede anidar otro kit.
			return nil, domain.ErrInvalidOperation
		}
		components = append(components, entity.KitComponent{
			KitID:       kitID,
			ComponentID: c.ProductID,
			QtyPerKit:   c.QtyPerKit,
			Position:    i,
		})
	}

	err = uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		if err := r.Kits.ReplaceComponents(kitID, components); err != nil {
			return err
		}
		_, err := uc.resolver.RecomputeCost(r, kitID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetKit(ctx, kitID)
}

// GetKit devuelve la composición del kit con capacidad y costo derivados.
func (uc *ProductUseCase) GetKit(ctx context.Context, kitID int64) (*dto.KitResponse, error) {
	kit, err := uc.repos.Products.GetByID(kitID)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	if !kit.IsKit() {
		return nil, domain.ErrInvalidOperation
	}
	comps, err := uc.repos.Kits.ListByKit(kitID)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.KitComponentResponse, 0, len(comps))
	for _, c := range comps {
		component, err := uc.repos.Products.GetByID(c.ComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			continue
		}
		total, err := uc.repos.Stock.TotalByProduct(c.ComponentID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.KitComponentResponse{
			ProductID:   c.ComponentID,
			ProductName: component.Name,
			QtyPerKit:   c.QtyPerKit,
			TotalStock:  total,
		})
	}
	capacity, err := uc.resolver.AvailableQuantity(uc.repos, kitID)
	if err != nil {
		return nil, err
	}
	cost, err := uc.resolver.UnitCost(uc.repos, kitID)
	if err != nil {
		return nil, err
	}
	return &dto.KitResponse{KitID: kitID, Components: lines, Capacity: capacity, UnitCost: cost}, nil
}

// GetStock devuelve el stock por ubicación de un producto individual.
func (uc *ProductUseCase) GetStock(ctx context.Context, productID int64) (*dto.ProductStockResponse, error) {
	product, err := uc.repos.Products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.IsKit() {
		return nil, domain.ErrInvalidOperation
	}
	rows, err := uc.repos.Stock.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	var total int64
	locations := make([]dto.StockByLocationResponse, 0, len(rows))
	for _, s := range rows {
		name := ""
		if l, err := uc.repos.Locations.GetByID(s.LocationID); err == nil && l != nil {
			name = l.Name
		}
		total += s.Quantity
		locations = append(locations, dto.StockByLocationResponse{
			LocationID:   s.LocationID,
			LocationName: name,
			Quantity:     s.Quantity,
		})
	}
	return &dto.ProductStockResponse{ProductID: productID, Total: total, Locations: locations}, nil
}

// Categories devuelve las categorías distintas del catálogo.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.repos.Products.Categories()
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	resp := &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Barcode:      p.Barcode,
		SupplierID:   p.SupplierID,
		Kind:         p.Kind,
		PurchaseCost: p.PurchaseCost,
		SalePrice:    p.SalePrice,
		ReorderPoint: p.ReorderPoint,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.IsKit() {
		capacity, err := uc.resolver.AvailableQuantity(uc.repos, p.ID)
		if err != nil {
			return nil, err
		}
		cost, err := uc.resolver.UnitCost(uc.repos, p.ID)
		if err != nil {
			return nil, err
		}
		resp.TotalStock = capacity
		resp.PurchaseCost = cost
	} else {
		total, err := uc.repos.Stock.TotalByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		resp.TotalStock = total
	}
	return resp, nil
}

// cascadeDeleteProduct elimina el producto y todo lo que cuelga de él:
// su composición si es kit, su membresía en kits ajenos, sus filas de stock
// y su historial de movimientos. Los kits que referenciaban al producto
// quedan con su costo derivado recalculado sobre la composición restante,
// dentro de la misma transacción. Las líneas históricas de venta/orden las
// cubre la FK en cascada del esquema.
func cascadeDeleteProduct(r *repository.Repos, resolver *inventory.KitResolver, productID int64) error {
	if err := r.Kits.DeleteByKit(productID); err != nil {
		return err
	}
	affected, err := r.Kits.ListKitsByComponent(productID)
	if err != nil {
		return err
	}
	if err := r.Kits.DeleteByComponent(productID); err != nil {
		return err
	}
	if err := r.Stock.DeleteByProduct(productID); err != nil {
		return err
	}
	if err := r.Movements.DeleteByProduct(productID); err != nil {
		return err
	}
	if err := r.Products.Delete(productID); err != nil {
		return err
	}
	for _, kitID := range affected {
		if _, err := resolver.RecomputeCost(r, kitID); err != nil {
			return err
		}
	}
	return nil
}
