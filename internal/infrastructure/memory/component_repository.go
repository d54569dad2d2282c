package memory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo vista de ComponentRepository sobre el Store.
type ComponentRepo struct {
	s *Store
}

// NewComponentRepository construye la vista de componentes.
func NewComponentRepository(s *Store) *ComponentRepo {
	return &ComponentRepo{s: s}
}

// Create inserta la fila component. Exige que la fila item exista (la escribe
// ItemRepository en la misma transacción) y que la unidad de medida sea válida,
// igual que las FK del esquema.
func (r *ComponentRepo) Create(c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.components[c.Code]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.items[c.Code]; !ok {
		return domain.ErrForeignKey
	}
	if _, ok := r.s.units[c.UnitMeasureCode]; !ok {
		return domain.ErrForeignKey
	}
	r.s.components[c.Code] = componentRow{
		unitMeasureCode:  c.UnitMeasureCode,
		manufacturerCode: c.ManufacturerCode,
		averagePrice:     decimal.Zero,
	}
	return nil
}

// Update actualiza unidad de medida y fabricante. No toca el precio medio.
func (r *ComponentRepo) Update(c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.components[c.Code]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.units[c.UnitMeasureCode]; !ok {
		return domain.ErrForeignKey
	}
	row.unitMeasureCode = c.UnitMeasureCode
	row.manufacturerCode = c.ManufacturerCode
	r.s.components[c.Code] = row
	return nil
}

// Delete elimina la fila component si no conserva ofertas.
func (r *ComponentRepo) Delete(code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.components[code]; !ok {
		return domain.ErrNotFound
	}
	if len(r.s.offers[code]) > 0 {
		return domain.ErrForeignKey
	}
	delete(r.s.components, code)
	return nil
}

// FindByCode obtiene un componente con sus campos de item.
func (r *ComponentRepo) FindByCode(code string) (*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.assemble(code)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// FindAll lista todos los componentes ordenados por código.
func (r *ComponentRepo) FindAll() ([]*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*entity.Component) bool { return true }), nil
}

// FindPage lista componentes paginados (page/size en base 1).
func (r *ComponentRepo) FindPage(page, size int) ([]*entity.Component, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: paginación inválida (page=%d, size=%d)",
			domain.ErrInvalidInput, page, size)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return paginate(r.collect(func(*entity.Component) bool { return true }), page, size), nil
}

// FilterByCode filtra por patrón de código sin distinguir mayúsculas.
func (r *ComponentRepo) FilterByCode(pattern string) ([]*entity.Component, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	needle := strings.ToLower(pattern)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(c *entity.Component) bool {
		return strings.Contains(strings.ToLower(c.Code), needle)
	}), nil
}

// FindByPriceRange lista componentes con precio medio dentro del rango.
func (r *ComponentRepo) FindByPriceRange(min, max decimal.Decimal) ([]*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.collect(func(c *entity.Component) bool {
		return c.AveragePrice.GreaterThanOrEqual(min) && c.AveragePrice.LessThanOrEqual(max)
	})
	// El adaptador PostgreSQL ordena por precio; replicarlo aquí.
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j].AveragePrice.LessThan(list[j-1].AveragePrice); j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}
	return list, nil
}

// RecomputeAveragePrice fija el precio medio a la media de las ofertas, o 0 sin ofertas.
func (r *ComponentRepo) RecomputeAveragePrice(code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.components[code]
	if !ok {
		return domain.ErrNotFound
	}
	offers := r.s.offers[code]
	if len(offers) == 0 {
		row.averagePrice = decimal.Zero
	} else {
		sum := decimal.Zero
		for _, price := range offers {
			sum = sum.Add(price)
		}
		row.averagePrice = sum.Div(decimal.NewFromInt(int64(len(offers))))
	}
	r.s.components[code] = row
	return nil
}

// Count cuenta los componentes.
func (r *ComponentRepo) Count() (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.components), nil
}

// assemble monta la entidad juntando la fila item y la fila component.
// Llamar con el lock tomado.
func (r *ComponentRepo) assemble(code string) (*entity.Component, bool) {
	row, ok := r.s.components[code]
	if !ok {
		return nil, false
	}
	item, ok := r.s.items[code]
	if !ok {
		return nil, false
	}
	return &entity.Component{
		Item:             item,
		UnitMeasureCode:  row.unitMeasureCode,
		ManufacturerCode: row.manufacturerCode,
		AveragePrice:     row.averagePrice,
	}, true
}

func (r *ComponentRepo) collect(keep func(*entity.Component) bool) []*entity.Component {
	var list []*entity.Component
	for _, code := range sortedKeys(r.s.components) {
		if c, ok := r.assemble(code); ok && keep(c) {
			list = append(list, c)
		}
	}
	return list
}
