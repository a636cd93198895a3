// Package inventory contiene los servicios de dominio del libro de inventario.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado de una variante tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si no hay stock resultante devuelve el costo de la entrada.
func WeightedAverageCost(stock, cost, qty, unitCost decimal.Decimal) decimal.Decimal {
	sum := stock.Add(qty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return unitCost
	}
	num := stock.Mul(cost).Add(qty.Mul(unitCost))
	return num.DivRound(sum, 4)
}

// MovementTotal costo total de un movimiento (cantidad * costo unitario).
func MovementTotal(qty, unitCost decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitCost).Round(4)
}
