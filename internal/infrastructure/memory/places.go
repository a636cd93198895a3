package memory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository    = (*WarehouseRepository)(nil)
	_ repository.LocationRepository     = (*LocationRepository)(nil)
	_ repository.BinRepository          = (*BinRepository)(nil)
	_ repository.SupplierRepository     = (*SupplierRepository)(nil)
	_ repository.ManufacturerRepository = (*ManufacturerRepository)(nil)
)

// WarehouseRepository bodegas en memoria.
type WarehouseRepository struct{ c conn }

// NewWarehouseRepository crea el repositorio sobre s.
func NewWarehouseRepository(s *Store) *WarehouseRepository { return &WarehouseRepository{c: conn{s: s}} }

func (r *WarehouseRepository) Create(_ context.Context, w *entity.Warehouse) error {
	return r.c.do(func(st *state) error {
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepository) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.c.do(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepository) Update(_ context.Context, w *entity.Warehouse) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; !ok {
			return domain.NotFound("warehouse", w.ID)
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepository) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.c.do(func(st *state) error {
		all := sortedValues(st.warehouses, func(a, b *entity.Warehouse) bool { return a.Name < b.Name })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *WarehouseRepository) Delete(_ context.Context, id string) error {
	return r.c.do(func(st *state) error {
		delete(st.warehouses, id)
		return nil
	})
}

// LocationRepository ubicaciones en memoria.
type LocationRepository struct{ c conn }

// NewLocationRepository crea el repositorio sobre s.
func NewLocationRepository(s *Store) *LocationRepository { return &LocationRepository{c: conn{s: s}} }

func (r *LocationRepository) Create(_ context.Context, l *entity.Location) error {
	return r.c.do(func(st *state) error {
		for _, other := range st.locations {
			if other.Code == l.Code {
				return domain.Duplicate("code", l.Code)
			}
		}
		st.locations[l.ID] = *l
		return nil
	})
}

func (r *LocationRepository) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.c.do(func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LocationRepository) GetByCode(_ context.Context, code string) (*entity.Location, error) {
	var out *entity.Location
	err := r.c.do(func(st *state) error {
		for _, l := range st.locations {
			if l.Code == code {
				l := l
				out = &l
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepository) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Location, error) {
	out := []*entity.Location{}
	err := r.c.do(func(st *state) error {
		for _, l := range sortedValues(st.locations, func(a, b *entity.Location) bool { return a.Code < b.Code }) {
			if l.WarehouseID == warehouseID {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, err
}

// BinRepository bins en memoria.
type BinRepository struct{ c conn }

// NewBinRepository crea el repositorio sobre s.
func NewBinRepository(s *Store) *BinRepository { return &BinRepository{c: conn{s: s}} }

func (r *BinRepository) Create(_ context.Context, b *entity.Bin) error {
	return r.c.do(func(st *state) error {
		for _, other := range st.bins {
			if other.Code == b.Code {
				return domain.Duplicate("code", b.Code)
			}
		}
		st.bins[b.ID] = *b
		return nil
	})
}

func (r *BinRepository) GetByID(_ context.Context, id string) (*entity.Bin, error) {
	var out *entity.Bin
	err := r.c.do(func(st *state) error {
		if b, ok := st.bins[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BinRepository) GetByCode(_ context.Context, code string) (*entity.Bin, error) {
	var out *entity.Bin
	err := r.c.do(func(st *state) error {
		for _, b := range st.bins {
			if b.Code == code {
				b := b
				out = &b
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *BinRepository) ListByLocation(_ context.Context, locationID string) ([]*entity.Bin, error) {
	out := []*entity.Bin{}
	err := r.c.do(func(st *state) error {
		for _, b := range sortedValues(st.bins, func(a, b *entity.Bin) bool { return a.Code < b.Code }) {
			if b.LocationID == locationID {
				out = append(out, b)
			}
		}
		return nil
	})
	return out, err
}

func (r *BinRepository) Occupy(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.c.do(func(st *state) error {
		b, found := st.bins[id]
		if !found {
			return domain.NotFound("bin", id)
		}
		if !b.HasRoom() {
			return nil
		}
		b.Occupancy++
		st.bins[id] = b
		ok = true
		return nil
	})
	return ok, err
}

func (r *BinRepository) Release(_ context.Context, id string) error {
	return r.c.do(func(st *state) error {
		b, found := st.bins[id]
		if !found {
			return domain.NotFound("bin", id)
		}
		if b.Occupancy > 0 {
			b.Occupancy--
		}
		st.bins[id] = b
		return nil
	})
}

// SupplierRepository proveedores en memoria.
type SupplierRepository struct{ c conn }

// NewSupplierRepository crea el repositorio sobre s.
func NewSupplierRepository(s *Store) *SupplierRepository { return &SupplierRepository{c: conn{s: s}} }

func (r *SupplierRepository) Create(_ context.Context, sp *entity.Supplier) error {
	return r.c.do(func(st *state) error {
		st.suppliers[sp.ID] = *sp
		return nil
	})
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.c.do(func(st *state) error {
		if sp, ok := st.suppliers[id]; ok {
			out = &sp
		}
		return nil
	})
	return out, err
}

// ManufacturerRepository fabricantes en memoria.
type ManufacturerRepository struct{ c conn }

// NewManufacturerRepository crea el repositorio sobre s.
func NewManufacturerRepository(s *Store) *ManufacturerRepository {
	return &ManufacturerRepository{c: conn{s: s}}
}

func (r *ManufacturerRepository) Create(_ context.Context, m *entity.Manufacturer) error {
	return r.c.do(func(st *state) error {
		st.manufacturers[m.ID] = *m
		return nil
	})
}

func (r *ManufacturerRepository) GetByID(_ context.Context, id string) (*entity.Manufacturer, error) {
	var out *entity.Manufacturer
	err := r.c.do(func(st *state) error {
		if m, ok := st.manufacturers[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *ManufacturerRepository) NextSequentialCode(_ context.Context) (int64, error) {
	var seq int64
	err := r.c.do(func(st *state) error {
		st.mfrSeq++
		seq = st.mfrSeq
		return nil
	})
	return seq, err
}
