package memory

import (
	"fmt"
	"strings"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo vista de ProductRepository sobre el Store.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye la vista de productos.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create inserta la fila producte. Exige que la fila item exista.
func (r *ProductRepo) Create(code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.products[code] {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.items[code]; !ok {
		return domain.ErrForeignKey
	}
	r.s.products[code] = true
	return nil
}

// Delete elimina la fila producte si el producto no aparece en ninguna BOM.
func (r *ProductRepo) Delete(code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.products[code] {
		return domain.ErrNotFound
	}
	if len(r.s.bom[code]) > 0 {
		return domain.ErrForeignKey
	}
	delete(r.s.products, code)
	return nil
}

// FindByCode obtiene un producto con sus campos de item.
func (r *ProductRepo) FindByCode(code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.products[code] {
		return nil, domain.ErrNotFound
	}
	item, ok := r.s.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.Product{Item: item}, nil
}

// FindAll lista todos los productos ordenados por código.
func (r *ProductRepo) FindAll() ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*entity.Product) bool { return true }), nil
}

// FindPage lista productos paginados (page/size en base 1).
func (r *ProductRepo) FindPage(page, size int) ([]*entity.Product, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: paginación inválida (page=%d, size=%d)",
			domain.ErrInvalidInput, page, size)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return paginate(r.collect(func(*entity.Product) bool { return true }), page, size), nil
}

// FilterByCode filtra por patrón de código sin distinguir mayúsculas.
func (r *ProductRepo) FilterByCode(pattern string) ([]*entity.Product, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	needle := strings.ToLower(pattern)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Code), needle)
	}), nil
}

// Count cuenta los productos.
func (r *ProductRepo) Count() (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.products), nil
}

func (r *ProductRepo) collect(keep func(*entity.Product) bool) []*entity.Product {
	var list []*entity.Product
	for _, code := range sortedKeys(r.s.products) {
		item, ok := r.s.items[code]
		if !ok {
			continue
		}
		p := &entity.Product{Item: item}
		if keep(p) {
			list = append(list, p)
		}
	}
	return list
}
