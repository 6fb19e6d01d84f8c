package entity

import "time"

// Client representa un cliente de ventas.
type Client struct {
	ID        string
	Document  string // NIT o cédula
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier representa un proveedor de compras.
type Supplier struct {
	ID        string
	Document  string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
