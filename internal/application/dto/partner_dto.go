package dto

import "time"

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	TaxID string `json:"tax_id"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateManufacturerRequest entrada para registrar un fabricante.
type CreateManufacturerRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// ManufacturerResponse salida de un fabricante.
type ManufacturerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SequentialCode int64     `json:"sequential_code"`
	CreatedAt      time.Time `json:"created_at"`
}
