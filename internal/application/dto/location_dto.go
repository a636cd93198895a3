package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación dentro de una bodega.
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Code        string `json:"code" validate:"required,max=64"`
	Name        string `json:"name" validate:"max=200"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateBinRequest entrada para crear un bin. Capacity 0 = sin límite.
type CreateBinRequest struct {
	LocationID string `json:"location_id" validate:"required"`
	Code       string `json:"code" validate:"required,max=64"`
	Capacity   int    `json:"capacity"`
	Occupancy  int    `json:"occupancy"`
}

// BinResponse salida de un bin.
type BinResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Code       string    `json:"code"`
	Capacity   int       `json:"capacity"`
	Occupancy  int       `json:"occupancy"`
	CreatedAt  time.Time `json:"created_at"`
}
