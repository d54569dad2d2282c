// Package memory implementa los puertos de persistencia del catálogo sobre
// mapas en memoria, con la misma semántica de errores y las mismas
// restricciones de integridad que los adaptadores PostgreSQL (claves únicas,
// claves foráneas, pares padre/hijo). Lo usan los tests de los servicios de
// aplicación y sirve de referencia ejecutable del contrato de cada puerto.
package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain/entity"
)

// componentRow es la fila de la tabla component (sin los campos de item).
type componentRow struct {
	unitMeasureCode  string
	manufacturerCode string
	averagePrice     decimal.Decimal
}

// Store guarda el estado completo del catálogo. Todas las vistas de repositorio
// comparten el mismo Store; el mutex da la consistencia que en PostgreSQL dan
// las transacciones.
type Store struct {
	mu             sync.RWMutex
	items          map[string]entity.Item
	products       map[string]bool
	components     map[string]componentRow
	bom            map[string]map[string]int             // producto -> item -> cantidad
	offers         map[string]map[string]decimal.Decimal // componente -> proveedor -> precio
	suppliers      map[string]entity.Supplier
	provinces      map[string]entity.Province
	municipalities map[string]entity.Municipality // clave provincia + "/" + número
	units          map[string]entity.UnitMeasure
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:          make(map[string]entity.Item),
		products:       make(map[string]bool),
		components:     make(map[string]componentRow),
		bom:            make(map[string]map[string]int),
		offers:         make(map[string]map[string]decimal.Decimal),
		suppliers:      make(map[string]entity.Supplier),
		provinces:      make(map[string]entity.Province),
		municipalities: make(map[string]entity.Municipality),
		units:          make(map[string]entity.UnitMeasure),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga de datos maestros (solo lectura a través de los puertos)
// ──────────────────────────────────────────────────────────────────────────────

// SeedUnitMeasure carga una unidad de medida.
func (s *Store) SeedUnitMeasure(u entity.UnitMeasure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[u.Code] = u
}

// SeedSupplier carga un proveedor.
func (s *Store) SeedSupplier(sup entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.Code] = sup
}

// SeedProvince carga una provincia.
func (s *Store) SeedProvince(p entity.Province) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provinces[p.Code] = p
}

// SeedMunicipality carga un municipio.
func (s *Store) SeedMunicipality(m entity.Municipality) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.municipalities[muniKey(m.ProvinceCode, m.Number)] = m
}

func muniKey(provinceCode, number string) string {
	return provinceCode + "/" + number
}

// ──────────────────────────────────────────────────────────────────────────────
// Instantáneas para el TxRunner
// ──────────────────────────────────────────────────────────────────────────────

type snapshot struct {
	items      map[string]entity.Item
	products   map[string]bool
	components map[string]componentRow
	bom        map[string]map[string]int
	offers     map[string]map[string]decimal.Decimal
}

// takeSnapshot copia el estado mutable (los datos maestros no cambian).
func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		items:      make(map[string]entity.Item, len(s.items)),
		products:   make(map[string]bool, len(s.products)),
		components: make(map[string]componentRow, len(s.components)),
		bom:        make(map[string]map[string]int, len(s.bom)),
		offers:     make(map[string]map[string]decimal.Decimal, len(s.offers)),
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k := range s.products {
		snap.products[k] = true
	}
	for k, v := range s.components {
		snap.components[k] = v
	}
	for parent, children := range s.bom {
		inner := make(map[string]int, len(children))
		for child, qty := range children {
			inner[child] = qty
		}
		snap.bom[parent] = inner
	}
	for comp, bySupplier := range s.offers {
		inner := make(map[string]decimal.Decimal, len(bySupplier))
		for sup, price := range bySupplier {
			inner[sup] = price
		}
		snap.offers[comp] = inner
	}
	return snap
}

// restore repone el estado mutable desde una instantánea.
func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.products = snap.products
	s.components = snap.components
	s.bom = snap.bom
	s.offers = snap.offers
}

// sortedKeys devuelve las claves de un mapa ordenadas, para listados estables.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// paginate corta un listado ya ordenado con page/size en base 1.
func paginate[T any](list []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(list) {
		return nil
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
