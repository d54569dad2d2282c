package memory

import (
	"fmt"
	"strings"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo vista de ItemRepository sobre el Store.
type ItemRepo struct {
	s *Store
}

// NewItemRepository construye la vista de items.
func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

// Create inserta la fila padre de un componente o producto.
func (r *ItemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.Code]; ok {
		return domain.ErrDuplicate
	}
	r.s.items[item.Code] = *item
	return nil
}

// UpdateDescriptive actualiza los campos descriptivos si el par (código, tipo) existe.
func (r *ItemRepo) UpdateDescriptive(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.items[item.Code]
	if !ok || current.Kind != item.Kind {
		return domain.ErrNotFound
	}
	current.Name = item.Name
	current.Description = item.Description
	current.Stock = item.Stock
	current.PhotoRef = item.PhotoRef
	r.s.items[item.Code] = current
	return nil
}

// UpdateStock fija el stock si el par (código, tipo) existe.
func (r *ItemRepo) UpdateStock(code string, kind entity.ItemKind, stock int) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock negativo (%d)", domain.ErrInvalidInput, stock)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.items[code]
	if !ok || current.Kind != kind {
		return domain.ErrNotFound
	}
	current.Stock = stock
	r.s.items[code] = current
	return nil
}

// Delete elimina la fila padre si no quedan filas dependientes.
func (r *ItemRepo) Delete(code string, kind entity.ItemKind) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.items[code]
	if !ok || current.Kind != kind {
		return domain.ErrNotFound
	}
	// Las filas hijas de component/producte referencian item: mismo orden de
	// borrado que en PostgreSQL (hija primero, padre después).
	if _, ok := r.s.components[code]; ok {
		return domain.ErrForeignKey
	}
	if r.s.products[code] {
		return domain.ErrForeignKey
	}
	for _, children := range r.s.bom {
		if _, ok := children[code]; ok {
			return domain.ErrForeignKey
		}
	}
	delete(r.s.items, code)
	return nil
}

// FindByCode obtiene un item por código.
func (r *ItemRepo) FindByCode(code string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// FindAll lista todos los items ordenados por código.
func (r *ItemRepo) FindAll() ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(entity.Item) bool { return true }), nil
}

// FindPage lista items paginados (page/size en base 1).
func (r *ItemRepo) FindPage(page, size int) ([]*entity.Item, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: paginación inválida (page=%d, size=%d)",
			domain.ErrInvalidInput, page, size)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return paginate(r.collect(func(entity.Item) bool { return true }), page, size), nil
}

// FilterByCode filtra por patrón de código sin distinguir mayúsculas.
func (r *ItemRepo) FilterByCode(pattern string) ([]*entity.Item, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	needle := strings.ToLower(pattern)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(i entity.Item) bool {
		return strings.Contains(strings.ToLower(i.Code), needle)
	}), nil
}

// FilterByName filtra por patrón de nombre sin mayúsculas ni acentos.
func (r *ItemRepo) FilterByName(pattern string) ([]*entity.Item, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	needle := foldAccents(pattern)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(i entity.Item) bool {
		return strings.Contains(foldAccents(i.Name), needle)
	}), nil
}

// Count cuenta los items.
func (r *ItemRepo) Count() (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.items), nil
}

// collect recorre los items en orden de código aplicando un filtro.
// Llamar con el lock tomado.
func (r *ItemRepo) collect(keep func(entity.Item) bool) []*entity.Item {
	var list []*entity.Item
	for _, code := range sortedKeys(r.s.items) {
		item := r.s.items[code]
		if keep(item) {
			copied := item
			list = append(list, &copied)
		}
	}
	return list
}
