package memory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// TxRunner transacciones en memoria: toma el mutex del almacén durante toda la
// función y restaura la instantánea previa si fn devuelve error.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner sobre s.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) within(ctx context.Context, fn func(c conn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snapshot := r.s.st.clone()
	if err := fn(conn{s: r.s, inTx: true}); err != nil {
		r.s.st = snapshot
		return err
	}
	return nil
}

// Run ejecuta una operación del libro de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	bins repository.BinRepository,
	variants repository.VariantRepository,
) error) error {
	return r.within(ctx, func(c conn) error {
		return fn(&ItemRepository{c: c}, &MovementRepository{c: c}, &BinRepository{c: c}, &VariantRepository{c: c})
	})
}

// RunCatalog ejecuta la asignación de secuenciales de producto y variante.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	products repository.ProductRepository,
	variants repository.VariantRepository,
) error) error {
	return r.within(ctx, func(c conn) error {
		return fn(&ProductRepository{c: c}, &VariantRepository{c: c})
	})
}
