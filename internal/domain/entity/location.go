package entity

import "time"

// Location zona física dentro de una bodega (pasillo, estante...).
type Location struct {
	ID          string
	WarehouseID string
	Code        string // único, <=64
	Name        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Bin casillero dentro de una Location. Capacity 0 = sin límite.
// Occupancy cuenta items alojados.
type Bin struct {
	ID         string
	LocationID string
	Code       string // único, <=64
	Capacity   int
	Occupancy  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasRoom indica si el bin admite un item más.
func (b *Bin) HasRoom() bool {
	return b.Capacity == 0 || b.Occupancy < b.Capacity
}
