package entity

import "time"

// Supplier proveedor referenciado opcionalmente por un Product.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	CreatedAt time.Time
}

// Manufacturer fabricante; su SequentialCode es el segundo segmento del fullCode de producto.
type Manufacturer struct {
	ID             string
	Name           string
	SequentialCode int64
	CreatedAt      time.Time
}
