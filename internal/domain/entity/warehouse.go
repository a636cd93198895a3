package entity

import "time"

// Warehouse representa una bodega o sucursal; agrupa ubicaciones.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
