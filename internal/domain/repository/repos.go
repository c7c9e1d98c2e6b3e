package repository

// Repos agrupa todos los puertos de persistencia. El TxRunner entrega un
// bundle atado a una transacción; fuera de transacción se usa uno atado al
// pool para lecturas.
type Repos struct {
	Suppliers    SupplierRepository
	Locations    LocationRepository
	Products     ProductRepository
	Kits         KitRepository
	Stock        StockRepository
	Movements    StockMovementRepository
	Orders       PurchaseOrderRepository
	Sales        SaleRepository
	Returns      ReturnRepository
	Transactions TransactionRepository
}
