package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var (
	_ repository.ItemRepository     = (*ItemRepository)(nil)
	_ repository.MovementRepository = (*MovementRepository)(nil)
)

// ItemRepository items en memoria.
type ItemRepository struct{ c conn }

// NewItemRepository crea el repositorio sobre s.
func NewItemRepository(s *Store) *ItemRepository { return &ItemRepository{c: conn{s: s}} }

func (r *ItemRepository) Create(_ context.Context, it *entity.Item) error {
	return r.c.do(func(st *state) error {
		for _, other := range st.items {
			switch {
			case other.Code == it.Code:
				return domain.Duplicate("code", it.Code)
			case other.FullCode == it.FullCode:
				return domain.Duplicate("full_code", it.FullCode)
			case other.EANCode == it.EANCode:
				return domain.Duplicate("ean_code", it.EANCode)
			case other.UPCCode == it.UPCCode:
				return domain.Duplicate("upc_code", it.UPCCode)
			}
		}
		st.items[it.ID] = *it
		return nil
	})
}

func (r *ItemRepository) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.c.do(func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *ItemRepository) findBy(match func(it *entity.Item) bool) (*entity.Item, error) {
	var out *entity.Item
	err := r.c.do(func(st *state) error {
		for _, it := range st.items {
			it := it
			if match(&it) {
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ItemRepository) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	return r.findBy(func(it *entity.Item) bool { return it.Code == code })
}

func (r *ItemRepository) GetByEAN(_ context.Context, ean string) (*entity.Item, error) {
	return r.findBy(func(it *entity.Item) bool { return it.EANCode == ean })
}

// GetForUpdate dentro de una tx el mutex del almacén ya serializa el acceso.
func (r *ItemRepository) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepository) LockVariantScope(_ context.Context, variantID string) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.variants[variantID]; !ok {
			return domain.NotFound("variant", variantID)
		}
		return nil
	})
}

func (r *ItemRepository) GetLastByVariant(_ context.Context, variantID string) (*entity.Item, error) {
	var out *entity.Item
	err := r.c.do(func(st *state) error {
		for _, it := range st.items {
			if it.VariantID != variantID {
				continue
			}
			if out == nil || it.SequentialCode > out.SequentialCode {
				it := it
				out = &it
			}
		}
		return nil
	})
	return out, err
}

func (r *ItemRepository) NextScanSequence(_ context.Context) (int64, error) {
	var seq int64
	err := r.c.do(func(st *state) error {
		st.scanSeq++
		seq = st.scanSeq
		return nil
	})
	return seq, err
}

func (r *ItemRepository) DecrementQuantity(_ context.Context, id string, qty decimal.Decimal, now time.Time) (decimal.Decimal, bool, error) {
	var after decimal.Decimal
	var ok bool
	err := r.c.do(func(st *state) error {
		it, found := st.items[id]
		if !found || it.CurrentQuantity.LessThan(qty) {
			return nil
		}
		it.CurrentQuantity = it.CurrentQuantity.Sub(qty)
		it.UpdatedAt = now
		st.items[id] = it
		after, ok = it.CurrentQuantity, true
		return nil
	})
	return after, ok, err
}

func (r *ItemRepository) UpdateLocation(_ context.Context, id, locationID, binID string, now time.Time) error {
	return r.c.do(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.NotFound("item", id)
		}
		it.LocationID = locationID
		it.BinID = binID
		it.UpdatedAt = now
		st.items[id] = it
		return nil
	})
}

func (r *ItemRepository) ListByVariant(_ context.Context, variantID string, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.c.do(func(st *state) error {
		all := sortedValues(st.items, func(a, b *entity.Item) bool { return a.SequentialCode < b.SequentialCode })
		filtered := make([]*entity.Item, 0, len(all))
		for _, it := range all {
			if it.VariantID == variantID {
				filtered = append(filtered, it)
			}
		}
		out = page(filtered, limit, offset)
		return nil
	})
	return out, err
}

func (r *ItemRepository) SumQuantityByVariant(_ context.Context, variantID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.c.do(func(st *state) error {
		for _, it := range st.items {
			if it.VariantID == variantID {
				sum = sum.Add(it.CurrentQuantity)
			}
		}
		return nil
	})
	return sum, err
}

// MovementRepository libro de movimientos en memoria (slice en orden de inserción).
type MovementRepository struct{ c conn }

// NewMovementRepository crea el repositorio sobre s.
func NewMovementRepository(s *Store) *MovementRepository { return &MovementRepository{c: conn{s: s}} }

func (r *MovementRepository) Create(_ context.Context, m *entity.Movement) error {
	return r.c.do(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepository) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.c.do(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepository) ListByItem(_ context.Context, itemID string) ([]*entity.Movement, error) {
	out := []*entity.Movement{}
	err := r.c.do(func(st *state) error {
		for _, m := range st.movements {
			if m.ItemID == itemID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}
