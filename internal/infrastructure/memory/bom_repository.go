package memory

import (
	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo vista de BOMRepository sobre el Store.
type BOMRepo struct {
	s *Store
}

// NewBOMRepository construye la vista de líneas de BOM.
func NewBOMRepository(s *Store) *BOMRepo {
	return &BOMRepo{s: s}
}

// AddEdge inserta una línea de BOM con las mismas FK que el esquema: el padre
// debe ser un producto y el hijo un item existente.
func (r *BOMRepo) AddEdge(e *entity.BOMEdge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.products[e.ProductCode] {
		return domain.ErrForeignKey
	}
	if _, ok := r.s.items[e.ItemCode]; !ok {
		return domain.ErrForeignKey
	}
	children := r.s.bom[e.ProductCode]
	if children == nil {
		children = make(map[string]int)
		r.s.bom[e.ProductCode] = children
	}
	if _, ok := children[e.ItemCode]; ok {
		return domain.ErrDuplicate
	}
	children[e.ItemCode] = e.Quantity
	return nil
}

// UpdateQuantity cambia la cantidad de una línea existente.
func (r *BOMRepo) UpdateQuantity(e *entity.BOMEdge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	children := r.s.bom[e.ProductCode]
	if _, ok := children[e.ItemCode]; !ok {
		return domain.ErrNotFound
	}
	children[e.ItemCode] = e.Quantity
	return nil
}

// RemoveEdge elimina una línea por clave compuesta.
func (r *BOMRepo) RemoveEdge(productCode, itemCode string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	children := r.s.bom[productCode]
	if _, ok := children[itemCode]; !ok {
		return domain.ErrNotFound
	}
	delete(children, itemCode)
	if len(children) == 0 {
		delete(r.s.bom, productCode)
	}
	return nil
}

// FindEdge obtiene una línea por clave compuesta.
func (r *BOMRepo) FindEdge(productCode, itemCode string) (*entity.BOMEdge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	qty, ok := r.s.bom[productCode][itemCode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.BOMEdge{ProductCode: productCode, ItemCode: itemCode, Quantity: qty}, nil
}

// FindByProduct lista las líneas de un producto ordenadas por item hijo.
func (r *BOMRepo) FindByProduct(productCode string) ([]*entity.BOMEdge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	children := r.s.bom[productCode]
	var list []*entity.BOMEdge
	for _, itemCode := range sortedKeys(children) {
		list = append(list, &entity.BOMEdge{
			ProductCode: productCode,
			ItemCode:    itemCode,
			Quantity:    children[itemCode],
		})
	}
	return list, nil
}

// FindAll lista todas las líneas de BOM.
func (r *BOMRepo) FindAll() ([]*entity.BOMEdge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.BOMEdge
	for _, productCode := range sortedKeys(r.s.bom) {
		children := r.s.bom[productCode]
		for _, itemCode := range sortedKeys(children) {
			list = append(list, &entity.BOMEdge{
				ProductCode: productCode,
				ItemCode:    itemCode,
				Quantity:    children[itemCode],
			})
		}
	}
	return list, nil
}

// FindPricedEdges resuelve las líneas del producto con tipo y precio medio del
// hijo, equivalente al JOIN + LEFT JOIN del adaptador PostgreSQL.
func (r *BOMRepo) FindPricedEdges(productCode string) ([]repository.PricedEdge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	children := r.s.bom[productCode]
	var list []repository.PricedEdge
	for _, itemCode := range sortedKeys(children) {
		item, ok := r.s.items[itemCode]
		if !ok {
			continue
		}
		edge := repository.PricedEdge{
			ItemCode: itemCode,
			Quantity: children[itemCode],
			Kind:     item.Kind,
		}
		if row, ok := r.s.components[itemCode]; ok {
			edge.AveragePrice = decimal.NullDecimal{Decimal: row.averagePrice, Valid: true}
		}
		list = append(list, edge)
	}
	return list, nil
}
