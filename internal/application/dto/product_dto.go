package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Kind: "individual" (default) o "kit". ReorderPoint solo aplica a individual.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Barcode      string          `json:"barcode,omitempty"`
	SupplierID   int64           `json:"supplier_id"`
	Kind         string          `json:"kind,omitempty"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	ReorderPoint int64           `json:"reorder_point"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales;
// Kind no es editable).
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Barcode      *string          `json:"barcode,omitempty"`
	SupplierID   *int64           `json:"supplier_id,omitempty"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost,omitempty"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	ReorderPoint *int64           `json:"reorder_point,omitempty"`
}

// ProductResponse representación de un producto. Para kits, TotalStock es la
// capacidad derivada y PurchaseCost el costo derivado de los componentes.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Barcode      string          `json:"barcode"`
	SupplierID   int64           `json:"supplier_id"`
	Kind         string          `json:"kind"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	ReorderPoint int64           `json:"reorder_point"`
	TotalStock   int64           `json:"total_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// KitComponentRequest un componente dentro de la definición de un kit.
type KitComponentRequest struct {
	ProductID int64 `json:"product_id"`
	QtyPerKit int64 `json:"qty_per_kit"`
}

// DefineKitRequest body para PUT /api/products/:id/kit. Reemplaza la lista
// completa de componentes; una lista vacía se rechaza.
type DefineKitRequest struct {
	Components []KitComponentRequest `json:"components"`
}

// KitComponentResponse un componente del kit con su disponibilidad.
type KitComponentResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	QtyPerKit   int64  `json:"qty_per_kit"`
	TotalStock  int64  `json:"total_stock"`
}

// KitResponse composición y métricas derivadas de un kit.
type KitResponse struct {
	KitID      int64                  `json:"kit_id"`
	Components []KitComponentResponse `json:"components"`
	Capacity   int64                  `json:"capacity"`
	UnitCost   decimal.Decimal        `json:"unit_cost"`
}

// StockByLocationResponse cantidad de un producto en una ubicación.
type StockByLocationResponse struct {
	LocationID   int64  `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"quantity"`
}

// ProductStockResponse stock por ubicación + total de un producto individual.
type ProductStockResponse struct {
	ProductID int64                     `json:"product_id"`
	Total     int64                     `json:"total"`
	Locations []StockByLocationResponse `json:"locations"`
}
