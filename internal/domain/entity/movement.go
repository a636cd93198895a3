package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementPurchase       = "PURCHASE"
	MovementCustomerReturn = "CUSTOMER_RETURN"
	MovementSale           = "SALE"
	MovementProduction     = "PRODUCTION"
	MovementSample         = "SAMPLE"
	MovementLoss           = "LOSS"
	MovementTransfer       = "TRANSFER"
	MovementAdjustment     = "INVENTORY_ADJUSTMENT"
)

// IsEntryType tipos válidos para RegisterEntry.
func IsEntryType(t string) bool {
	return t == MovementPurchase || t == MovementCustomerReturn
}

// IsExitType tipos válidos para RegisterExit.
func IsExitType(t string) bool {
	switch t {
	case MovementSale, MovementProduction, MovementSample, MovementLoss:
		return true
	}
	return false
}

// Movement registro inmutable de un evento que afecta cantidad o ubicación de un Item.
// Solo se crea; no existe edición ni borrado.
type Movement struct {
	ID             string
	ItemID         string
	UserID         string
	Type           string
	Quantity       decimal.Decimal // siempre > 0
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	UnitCost       decimal.Decimal
	TotalCost      decimal.Decimal
	ReasonCode     string // <=64
	DestinationRef string // <=256
	Notes          string // <=1000
	CreatedAt      time.Time
}
