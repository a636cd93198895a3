// Package memory implementa los puertos de repositorio en memoria. Sirve para
// desarrollo (STORE_BACKEND=memory) y como doble de pruebas de los casos de uso.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// state datos del almacén. Las entidades se guardan por valor: leer devuelve una
// copia y escribir reemplaza la entrada completa.
type state struct {
	templates     map[string]entity.Template
	products      map[string]entity.Product
	variants      map[string]entity.Variant
	items         map[string]entity.Item
	movements     []entity.Movement
	warehouses    map[string]entity.Warehouse
	locations     map[string]entity.Location
	bins          map[string]entity.Bin
	suppliers     map[string]entity.Supplier
	manufacturers map[string]entity.Manufacturer
	templateSeq   int64
	mfrSeq        int64
	scanSeq       int64
}

func newState() *state {
	return &state{
		templates:     map[string]entity.Template{},
		products:      map[string]entity.Product{},
		variants:      map[string]entity.Variant{},
		items:         map[string]entity.Item{},
		warehouses:    map[string]entity.Warehouse{},
		locations:     map[string]entity.Location{},
		bins:          map[string]entity.Bin{},
		suppliers:     map[string]entity.Supplier{},
		manufacturers: map[string]entity.Manufacturer{},
	}
}

// clone copia superficial de los mapas; basta porque las entradas nunca se mutan in situ.
func (s *state) clone() *state {
	c := &state{
		templates:     cloneMap(s.templates),
		products:      cloneMap(s.products),
		variants:      cloneMap(s.variants),
		items:         cloneMap(s.items),
		movements:     append([]entity.Movement(nil), s.movements...),
		warehouses:    cloneMap(s.warehouses),
		locations:     cloneMap(s.locations),
		bins:          cloneMap(s.bins),
		suppliers:     cloneMap(s.suppliers),
		manufacturers: cloneMap(s.manufacturers),
		templateSeq:   s.templateSeq,
		mfrSeq:        s.mfrSeq,
		scanSeq:       s.scanSeq,
	}
	return c
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store almacén en memoria. Un único mutex serializa lecturas, escrituras y
// transacciones completas.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// conn acceso al estado: fuera de una tx toma el mutex en cada operación; dentro
// de una tx el mutex ya lo tiene TxRunner.
type conn struct {
	s    *Store
	inTx bool
}

func (c conn) do(fn func(st *state) error) error {
	if !c.inTx {
		c.s.mu.Lock()
		defer c.s.mu.Unlock()
	}
	return fn(c.s.st)
}

// page aplica limit/offset a una lista ya ordenada; limit <= 0 devuelve todo.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortedValues[V any](m map[string]V, less func(a, b *V) bool) []*V {
	out := make([]*V, 0, len(m))
	for _, v := range m {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
