package usecase

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn en una transacción con repositorios atados a ella.
// Se usa para asignar secuenciales de producto y variante bajo bloqueo del padre.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		products repository.ProductRepository,
		variants repository.VariantRepository,
	) error) error
}
