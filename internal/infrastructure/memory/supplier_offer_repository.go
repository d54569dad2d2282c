package memory

import (
	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.SupplierOfferRepository = (*SupplierOfferRepo)(nil)

// SupplierOfferRepo vista de SupplierOfferRepository sobre el Store.
type SupplierOfferRepo struct {
	s *Store
}

// NewSupplierOfferRepository construye la vista de ofertas.
func NewSupplierOfferRepository(s *Store) *SupplierOfferRepo {
	return &SupplierOfferRepo{s: s}
}

// Create inserta una oferta con las mismas FK que el esquema: componente y
// proveedor deben existir.
func (r *SupplierOfferRepo) Create(o *entity.SupplierOffer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.components[o.ComponentCode]; !ok {
		return domain.ErrForeignKey
	}
	if _, ok := r.s.suppliers[o.SupplierCode]; !ok {
		return domain.ErrForeignKey
	}
	bySupplier := r.s.offers[o.ComponentCode]
	if bySupplier == nil {
		bySupplier = make(map[string]decimal.Decimal)
		r.s.offers[o.ComponentCode] = bySupplier
	}
	if _, ok := bySupplier[o.SupplierCode]; ok {
		return domain.ErrDuplicate
	}
	bySupplier[o.SupplierCode] = o.Price
	return nil
}

// UpdatePrice cambia el precio de una oferta existente.
func (r *SupplierOfferRepo) UpdatePrice(componentCode, supplierCode string, price decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bySupplier := r.s.offers[componentCode]
	if _, ok := bySupplier[supplierCode]; !ok {
		return domain.ErrNotFound
	}
	bySupplier[supplierCode] = price
	return nil
}

// Delete elimina una oferta por clave compuesta.
func (r *SupplierOfferRepo) Delete(componentCode, supplierCode string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bySupplier := r.s.offers[componentCode]
	if _, ok := bySupplier[supplierCode]; !ok {
		return domain.ErrNotFound
	}
	delete(bySupplier, supplierCode)
	if len(bySupplier) == 0 {
		delete(r.s.offers, componentCode)
	}
	return nil
}

// Find obtiene una oferta por clave compuesta.
func (r *SupplierOfferRepo) Find(componentCode, supplierCode string) (*entity.SupplierOffer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	price, ok := r.s.offers[componentCode][supplierCode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.SupplierOffer{
		ComponentCode: componentCode,
		SupplierCode:  supplierCode,
		Price:         price,
	}, nil
}

// FindByComponent lista las ofertas de un componente ordenadas por proveedor.
func (r *SupplierOfferRepo) FindByComponent(componentCode string) ([]*entity.SupplierOffer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	bySupplier := r.s.offers[componentCode]
	var list []*entity.SupplierOffer
	for _, supplierCode := range sortedKeys(bySupplier) {
		list = append(list, &entity.SupplierOffer{
			ComponentCode: componentCode,
			SupplierCode:  supplierCode,
			Price:         bySupplier[supplierCode],
		})
	}
	return list, nil
}

// FindBySupplier lista las ofertas de un proveedor ordenadas por componente.
func (r *SupplierOfferRepo) FindBySupplier(supplierCode string) ([]*entity.SupplierOffer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.SupplierOffer
	for _, componentCode := range sortedKeys(r.s.offers) {
		if price, ok := r.s.offers[componentCode][supplierCode]; ok {
			list = append(list, &entity.SupplierOffer{
				ComponentCode: componentCode,
				SupplierCode:  supplierCode,
				Price:         price,
			})
		}
	}
	return list, nil
}
