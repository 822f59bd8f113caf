package model

import "time"

// Product represents a row of the `products` table: an item sold at the
// front desk (food, medication, accessories).  Prices are CLP integers.
//
// Fields:
//  ID          – primary key identifier.
//  Nombre      – product name.
//  Descripcion – description (may be empty).
//  Precio      – unit price in CLP.
//  Stock       – units on hand.
type Product struct {
    ID          uint64 // products.id
    Nombre      string // products.nombre
    Descripcion string // products.descripcion
    Precio      int64  // products.precio (CLP)
    Stock       int    // products.stock
}

// Sale represents a row of the `sales` table.  A sale groups one or more
// items bought in a single front-desk transaction.  The receipt number is a
// UUID generated at creation so tickets can be referenced without exposing
// sequential IDs.
//
// Fields:
//  ID       – primary key identifier.
//  ClientID – buying client (nullable for anonymous counter sales).
//  Receipt  – UUID receipt reference.
//  Fecha    – timestamp of the sale.
//  Total    – sum of item subtotals in CLP.
type Sale struct {
    ID       uint64    // sales.id
    ClientID *uint64   // sales.client_id (nullable)
    Receipt  string    // sales.receipt
    Fecha    time.Time // sales.fecha
    Total    int64     // sales.total (CLP)
}

// SaleItem represents a row of the `sale_items` table: one product line in
// a sale.  The unit price is frozen at sale time; it defaults to the
// product's current price when the caller does not override it.
//
// Fields:
//  ID             – primary key identifier.
//  SaleID         – sale the line belongs to.
//  ProductID      – product sold.
//  Cantidad       – units sold (positive).
//  PrecioUnitario – unit price in CLP at sale time.
type SaleItem struct {
    ID             uint64 // sale_items.id
    SaleID         uint64 // sale_items.sale_id
    ProductID      uint64 // sale_items.product_id
    Cantidad       int    // sale_items.cantidad
    PrecioUnitario int64  // sale_items.precio_unitario (CLP)
}
