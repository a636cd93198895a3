package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var (
	_ repository.TemplateRepository = (*TemplateRepository)(nil)
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.VariantRepository  = (*VariantRepository)(nil)
)

// TemplateRepository plantillas en memoria.
type TemplateRepository struct{ c conn }

// NewTemplateRepository crea el repositorio sobre s.
func NewTemplateRepository(s *Store) *TemplateRepository { return &TemplateRepository{c: conn{s: s}} }

func (r *TemplateRepository) Create(_ context.Context, t *entity.Template) error {
	return r.c.do(func(st *state) error {
		for _, other := range st.templates {
			if strings.EqualFold(other.Name, t.Name) {
				return domain.Duplicate("name", t.Name)
			}
		}
		st.templates[t.ID] = *t
		return nil
	})
}

func (r *TemplateRepository) GetByID(_ context.Context, id string) (*entity.Template, error) {
	var out *entity.Template
	err := r.c.do(func(st *state) error {
		if t, ok := st.templates[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *TemplateRepository) GetByName(_ context.Context, name string) (*entity.Template, error) {
	var out *entity.Template
	err := r.c.do(func(st *state) error {
		for _, t := range st.templates {
			if strings.EqualFold(t.Name, name) {
				t := t
				out = &t
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *TemplateRepository) Update(_ context.Context, t *entity.Template) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.templates[t.ID]; !ok {
			return domain.NotFound("template", t.ID)
		}
		for _, other := range st.templates {
			if other.ID != t.ID && strings.EqualFold(other.Name, t.Name) {
				return domain.Duplicate("name", t.Name)
			}
		}
		st.templates[t.ID] = *t
		return nil
	})
}

func (r *TemplateRepository) Delete(_ context.Context, id string) error {
	return r.c.do(func(st *state) error {
		delete(st.templates, id)
		return nil
	})
}

func (r *TemplateRepository) List(_ context.Context, limit, offset int) ([]*entity.Template, error) {
	var out []*entity.Template
	err := r.c.do(func(st *state) error {
		all := sortedValues(st.templates, func(a, b *entity.Template) bool { return a.SequentialCode < b.SequentialCode })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *TemplateRepository) NextSequentialCode(_ context.Context) (int64, error) {
	var seq int64
	err := r.c.do(func(st *state) error {
		st.templateSeq++
		seq = st.templateSeq
		return nil
	})
	return seq, err
}

// ProductRepository productos en memoria.
type ProductRepository struct{ c conn }

// NewProductRepository crea el repositorio sobre s.
func NewProductRepository(s *Store) *ProductRepository { return &ProductRepository{c: conn{s: s}} }

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.c.do(func(st *state) error {
		for _, other := range st.products {
			if strings.EqualFold(other.Name, p.Name) {
				return domain.Duplicate("name", p.Name)
			}
			if other.TemplateID == p.TemplateID && other.SequentialCode == p.SequentialCode {
				return domain.Duplicate("sequential_code", p.FullCode)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) GetByName(_ context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.do(func(st *state) error {
		for _, p := range st.products {
			if strings.EqualFold(p.Name, name) {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.NotFound("product", p.ID)
		}
		for _, other := range st.products {
			if other.ID != p.ID && strings.EqualFold(other.Name, p.Name) {
				return domain.Duplicate("name", p.Name)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) ListByTemplate(_ context.Context, templateID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.c.do(func(st *state) error {
		all := sortedValues(st.products, func(a, b *entity.Product) bool { return a.SequentialCode < b.SequentialCode })
		filtered := make([]*entity.Product, 0, len(all))
		for _, p := range all {
			if templateID == "" || p.TemplateID == templateID {
				filtered = append(filtered, p)
			}
		}
		out = page(filtered, limit, offset)
		return nil
	})
	return out, err
}

func (r *ProductRepository) NextSequentialCode(_ context.Context, templateID string) (int64, error) {
	var seq int64
	err := r.c.do(func(st *state) error {
		if _, ok := st.templates[templateID]; !ok {
			return domain.NotFound("template", templateID)
		}
		for _, p := range st.products {
			if p.TemplateID == templateID && p.SequentialCode > seq {
				seq = p.SequentialCode
			}
		}
		seq++
		return nil
	})
	return seq, err
}

// VariantRepository variantes en memoria.
type VariantRepository struct{ c conn }

// NewVariantRepository crea el repositorio sobre s.
func NewVariantRepository(s *Store) *VariantRepository { return &VariantRepository{c: conn{s: s}} }

func variantUniques(st *state, v *entity.Variant) error {
	for _, other := range st.variants {
		if other.ID == v.ID {
			continue
		}
		switch {
		case other.SKU == v.SKU:
			return domain.Duplicate("sku", v.SKU)
		case v.Barcode != "" && other.Barcode == v.Barcode:
			return domain.Duplicate("barcode", v.Barcode)
		case v.EANCode != "" && other.EANCode == v.EANCode:
			return domain.Duplicate("ean_code", v.EANCode)
		case v.UPCCode != "" && other.UPCCode == v.UPCCode:
			return domain.Duplicate("upc_code", v.UPCCode)
		case other.ProductID == v.ProductID && other.SequentialCode == v.SequentialCode:
			return domain.Duplicate("sequential_code", v.FullCode)
		}
	}
	return nil
}

func (r *VariantRepository) Create(_ context.Context, v *entity.Variant) error {
	return r.c.do(func(st *state) error {
		if err := variantUniques(st, v); err != nil {
			return err
		}
		st.variants[v.ID] = *v
		return nil
	})
}

func (r *VariantRepository) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.c.do(func(st *state) error {
		if v, ok := st.variants[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *VariantRepository) findBy(match func(v *entity.Variant) bool) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.c.do(func(st *state) error {
		for _, v := range st.variants {
			v := v
			if match(&v) {
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *VariantRepository) GetBySKU(_ context.Context, sku string) (*entity.Variant, error) {
	return r.findBy(func(v *entity.Variant) bool { return v.SKU == sku })
}

func (r *VariantRepository) GetByBarcode(_ context.Context, barcode string) (*entity.Variant, error) {
	return r.findBy(func(v *entity.Variant) bool { return barcode != "" && v.Barcode == barcode })
}

func (r *VariantRepository) GetByEAN(_ context.Context, ean string) (*entity.Variant, error) {
	return r.findBy(func(v *entity.Variant) bool { return ean != "" && v.EANCode == ean })
}

func (r *VariantRepository) GetByUPC(_ context.Context, upc string) (*entity.Variant, error) {
	return r.findBy(func(v *entity.Variant) bool { return upc != "" && v.UPCCode == upc })
}

func (r *VariantRepository) Update(_ context.Context, v *entity.Variant) error {
	return r.c.do(func(st *state) error {
		if _, ok := st.variants[v.ID]; !ok {
			return domain.NotFound("variant", v.ID)
		}
		if err := variantUniques(st, v); err != nil {
			return err
		}
		st.variants[v.ID] = *v
		return nil
	})
}

func (r *VariantRepository) UpdateCost(_ context.Context, variantID string, cost decimal.Decimal) error {
	return r.c.do(func(st *state) error {
		v, ok := st.variants[variantID]
		if !ok {
			return domain.NotFound("variant", variantID)
		}
		v.CostPrice = &cost
		st.variants[variantID] = v
		return nil
	})
}

func (r *VariantRepository) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.Variant, error) {
	var out []*entity.Variant
	err := r.c.do(func(st *state) error {
		all := sortedValues(st.variants, func(a, b *entity.Variant) bool { return a.FullCode < b.FullCode })
		filtered := make([]*entity.Variant, 0, len(all))
		for _, v := range all {
			if v.ProductID == productID {
				filtered = append(filtered, v)
			}
		}
		out = page(filtered, limit, offset)
		return nil
	})
	return out, err
}

func (r *VariantRepository) NextSequentialCode(_ context.Context, productID string) (int64, error) {
	var seq int64
	err := r.c.do(func(st *state) error {
		if _, ok := st.products[productID]; !ok {
			return domain.NotFound("product", productID)
		}
		for _, v := range st.variants {
			if v.ProductID == productID && v.SequentialCode > seq {
				seq = v.SequentialCode
			}
		}
		seq++
		return nil
	})
	return seq, err
}

func (r *VariantRepository) ListBelowReorderPoint(_ context.Context) ([]repository.ReplenishmentRow, error) {
	var out []repository.ReplenishmentRow
	err := r.c.do(func(st *state) error {
		stock := map[string]decimal.Decimal{}
		for _, it := range st.items {
			stock[it.VariantID] = stock[it.VariantID].Add(it.CurrentQuantity)
		}
		for _, v := range sortedValues(st.variants, func(a, b *entity.Variant) bool { return a.FullCode < b.FullCode }) {
			if !v.IsActive || !stock[v.ID].LessThan(v.ReorderPoint) {
				continue
			}
			out = append(out, repository.ReplenishmentRow{
				VariantID:       v.ID,
				SKU:             v.SKU,
				VariantName:     v.Name,
				CurrentStock:    stock[v.ID],
				ReorderPoint:    v.ReorderPoint,
				ReorderQuantity: v.ReorderQuantity,
				MaxStock:        v.MaxStock,
			})
		}
		return nil
	})
	return out, err
}
