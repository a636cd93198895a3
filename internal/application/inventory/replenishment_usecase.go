package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// ReplenishmentUseCase lista de reposición: variantes cuyo stock sumado de items
// está por debajo de su punto de reorden.
type ReplenishmentUseCase struct {
	variants repository.VariantRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(variants repository.VariantRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{variants: variants}
}

// GenerateReplenishmentList devuelve las variantes bajo punto de reorden con la cantidad
// sugerida: ReorderQuantity si está definida, si no MaxStock - CurrentStock.
// Orden: mayor déficit primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	rows, err := uc.variants.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rows))
	for _, row := range rows {
		suggested := row.ReorderQuantity
		if !suggested.IsPositive() {
			suggested = row.MaxStock.Sub(row.CurrentStock)
		}
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			VariantID:         row.VariantID,
			SKU:               row.SKU,
			VariantName:       row.VariantName,
			CurrentStock:      row.CurrentStock,
			ReorderPoint:      row.ReorderPoint,
			Deficit:           row.ReorderPoint.Sub(row.CurrentStock),
			SuggestedOrderQty: suggested,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.Deficit.Equal(b.Deficit) {
			return a.Deficit.GreaterThan(b.Deficit)
		}
		return a.SKU < b.SKU
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
