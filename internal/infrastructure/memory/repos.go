package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ── Suppliers ──

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(supplier *entity.Supplier) error {
	supplier.ID = r.s.nextID()
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *supplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *supplierRepo) Update(supplier *entity.Supplier) error {
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, id := range sortedKeys(r.s.suppliers) {
		sup := r.s.suppliers[id]
		out = append(out, &sup)
	}
	return paginate(out, limit, offset), nil
}

func (r *supplierRepo) Delete(id int64) error {
	delete(r.s.suppliers, id)
	return nil
}

// ── Locations ──

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(location *entity.Location) error {
	for _, l := range r.s.locations {
		if l.Name == location.Name {
			return domain.ErrDuplicate
		}
	}
	location.ID = r.s.nextID()
	r.s.locations[location.ID] = *location
	return nil
}

func (r *locationRepo) GetByID(id int64) (*entity.Location, error) {
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *locationRepo) GetByName(name string) (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.Name == name {
			cp := l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *locationRepo) Update(location *entity.Location) error {
	r.s.locations[location.ID] = *location
	return nil
}

func (r *locationRepo) List(limit, offset int) ([]*entity.Location, error) {
	out := make([]*entity.Location, 0, len(r.s.locations))
	for _, id := range sortedKeys(r.s.locations) {
		l := r.s.locations[id]
		out = append(out, &l)
	}
	return paginate(out, limit, offset), nil
}

func (r *locationRepo) Delete(id int64) error {
	delete(r.s.locations, id)
	return nil
}

// ── Products ──

type productRepo struct{ s *Store }

func (r *productRepo) Create(product *entity.Product) error {
	product.ID = r.s.nextID()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) UpdateCost(productID int64, cost decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return nil
	}
	p.PurchaseCost = cost
	p.UpdatedAt = time.Now()
	r.s.products[productID] = p
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		out = append(out, &p)
	}
	return paginate(out, limit, offset), nil
}

func (r *productRepo) ListBySupplier(supplierID int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		if p.SupplierID == supplierID {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *productRepo) Categories() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *productRepo) Delete(id int64) error {
	delete(r.s.products, id)
	return nil
}

// ── Kits ──

type kitRepo struct{ s *Store }

func (r *kitRepo) ListByKit(kitID int64) ([]entity.KitComponent, error) {
	comps := append([]entity.KitComponent(nil), r.s.kits[kitID]...)
	sort.Slice(comps, func(i, j int) bool { return comps[i].Position < comps[j].Position })
	return comps, nil
}

func (r *kitRepo) ReplaceComponents(kitID int64, components []entity.KitComponent) error {
	r.s.kits[kitID] = append([]entity.KitComponent(nil), components...)
	return nil
}

func (r *kitRepo) DeleteByKit(kitID int64) error {
	delete(r.s.kits, kitID)
	return nil
}

func (r *kitRepo) ListKitsByComponent(componentID int64) ([]int64, error) {
	var ids []int64
	for kitID, comps := range r.s.kits {
		for _, c := range comps {
			if c.ComponentID == componentID {
				ids = append(ids, kitID)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *kitRepo) DeleteByComponent(componentID int64) error {
	for kitID, comps := range r.s.kits {
		kept := comps[:0]
		for _, c := range comps {
			if c.ComponentID != componentID {
				kept = append(kept, c)
			}
		}
		r.s.kits[kitID] = kept
	}
	return nil
}

// ── Stock ──

type stockRepo struct{ s *Store }

func (r *stockRepo) Get(productID, locationID int64) (*entity.Stock, error) {
	st, ok := r.s.stock[stockKey{productID, locationID}]
	if !ok {
		return &entity.Stock{ProductID: productID, LocationID: locationID}, nil
	}
	return &st, nil
}

func (r *stockRepo) GetForUpdate(productID, locationID int64) (*entity.Stock, error) {
	return r.Get(productID, locationID)
}

func (r *stockRepo) Upsert(stock *entity.Stock) error {
	r.s.stock[stockKey{stock.ProductID, stock.LocationID}] = *stock
	return nil
}

func (r *stockRepo) TotalByProduct(productID int64) (int64, error) {
	var total int64
	for k, st := range r.s.stock {
		if k.productID == productID {
			total += st.Quantity
		}
	}
	return total, nil
}

func (r *stockRepo) ListByProduct(productID int64) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for k, st := range r.s.stock {
		if k.productID == productID {
			cp := st
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

func (r *stockRepo) ListByLocation(locationID int64) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for k, st := range r.s.stock {
		if k.locationID == locationID {
			cp := st
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *stockRepo) HasPositiveStock(locationID int64) (bool, error) {
	for k, st := range r.s.stock {
		if k.locationID == locationID && st.Quantity > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *stockRepo) DeleteByProduct(productID int64) error {
	for k := range r.s.stock {
		if k.productID == productID {
			delete(r.s.stock, k)
		}
	}
	return nil
}

// ── Movements ──

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(movement *entity.StockMovement) error {
	movement.ID = r.s.nextID()
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *movementRepo) listFiltered(match func(entity.StockMovement) bool, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	// Más reciente primero, como el adaptador real.
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if match(r.s.movements[i]) {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *movementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return r.listFiltered(func(m entity.StockMovement) bool { return m.ProductID == productID }, limit, offset)
}

func (r *movementRepo) ListByLocation(locationID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return r.listFiltered(func(m entity.StockMovement) bool { return m.LocationID == locationID }, limit, offset)
}

func (r *movementRepo) ListBySupplier(supplierID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return r.listFiltered(func(m entity.StockMovement) bool {
		p, ok := r.s.products[m.ProductID]
		return ok && p.SupplierID == supplierID
	}, limit, offset)
}

func (r *movementRepo) DeleteByProduct(productID int64) error {
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

// ── Purchase orders ──

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(order *entity.PurchaseOrder, items []entity.PurchaseOrderItem) error {
	order.ID = r.s.nextID()
	r.s.orders[order.ID] = *order
	stored := make([]entity.PurchaseOrderItem, len(items))
	for i := range items {
		items[i].ID = r.s.nextID()
		items[i].OrderID = order.ID
		stored[i] = items[i]
	}
	r.s.orderItems[order.ID] = stored
	return nil
}

func (r *orderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *orderRepo) ListItems(orderID int64) ([]entity.PurchaseOrderItem, error) {
	return append([]entity.PurchaseOrderItem(nil), r.s.orderItems[orderID]...), nil
}

func (r *orderRepo) UpdateStatus(id int64, status string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return nil
	}
	o.Status = status
	r.s.orders[id] = o
	return nil
}

func (r *orderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	keys := sortedKeys(r.s.orders)
	out := make([]*entity.PurchaseOrder, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		o := r.s.orders[keys[i]]
		out = append(out, &o)
	}
	return paginate(out, limit, offset), nil
}

// ── Sales ──

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sale *entity.Sale, items []entity.SaleItem) error {
	sale.ID = r.s.nextID()
	r.s.sales[sale.ID] = *sale
	stored := make([]entity.SaleItem, len(items))
	for i := range items {
		items[i].ID = r.s.nextID()
		items[i].SaleID = sale.ID
		stored[i] = items[i]
	}
	r.s.saleItems[sale.ID] = stored
	return nil
}

func (r *saleRepo) GetByID(id int64) (*entity.Sale, error) {
	sl, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sl, nil
}

func (r *saleRepo) ListItems(saleID int64) ([]entity.SaleItem, error) {
	return append([]entity.SaleItem(nil), r.s.saleItems[saleID]...), nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	keys := sortedKeys(r.s.sales)
	out := make([]*entity.Sale, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		sl := r.s.sales[keys[i]]
		out = append(out, &sl)
	}
	return paginate(out, limit, offset), nil
}

// ── Returns ──

type returnRepo struct{ s *Store }

func (r *returnRepo) Create(ret *entity.Return, items []entity.ReturnItem) error {
	ret.ID = r.s.nextID()
	r.s.returns[ret.ID] = *ret
	stored := make([]entity.ReturnItem, len(items))
	for i := range items {
		items[i].ID = r.s.nextID()
		items[i].ReturnID = ret.ID
		stored[i] = items[i]
	}
	r.s.returnItems[ret.ID] = stored
	return nil
}

func (r *returnRepo) GetByID(id int64) (*entity.Return, error) {
	ret, ok := r.s.returns[id]
	if !ok {
		return nil, nil
	}
	return &ret, nil
}

func (r *returnRepo) ListItems(returnID int64) ([]entity.ReturnItem, error) {
	return append([]entity.ReturnItem(nil), r.s.returnItems[returnID]...), nil
}

func (r *returnRepo) Update(ret *entity.Return) error {
	r.s.returns[ret.ID] = *ret
	return nil
}

func (r *returnRepo) List(limit, offset int) ([]*entity.Return, error) {
	keys := sortedKeys(r.s.returns)
	out := make([]*entity.Return, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		ret := r.s.returns[keys[i]]
		out = append(out, &ret)
	}
	return paginate(out, limit, offset), nil
}

// ── Financial transactions ──

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(tx *entity.FinancialTransaction) error {
	tx.ID = r.s.nextID()
	r.s.transactions[tx.ID] = *tx
	return nil
}

func (r *transactionRepo) GetByReturn(returnID int64) (*entity.FinancialTransaction, error) {
	for _, tx := range r.s.transactions {
		if tx.ReturnID == returnID {
			cp := tx
			return &cp, nil
		}
	}
	return nil, nil
}

// ── Users ──

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *entity.User) error {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	user.ID = r.s.nextID()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
