package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name                       string
		stock, cost, qty, unitCost string
		want                       string
	}{
		{"sin stock previo toma el costo de la entrada", "0", "0", "10", "5", "5"},
		{"promedio simple", "10", "4", "10", "6", "5"},
		{"ponderado", "30", "10", "10", "20", "12.5"},
		{"redondeo a 4 decimales", "1", "1", "2", "2", "1.6667"},
		{"cantidad total cero", "0", "7", "0", "9", "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.WeightedAverageCost(d(tt.stock), d(tt.cost), d(tt.qty), d(tt.unitCost))
			assert.True(t, d(tt.want).Equal(got), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

func TestMovementTotal(t *testing.T) {
	assert.True(t, d("37.5").Equal(inventory.MovementTotal(d("15"), d("2.5"))))
	assert.True(t, inventory.MovementTotal(d("3"), decimal.Zero).IsZero())
}
