package memory

import (
	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var (
	_ repository.SupplierRepository     = (*SupplierRepo)(nil)
	_ repository.ProvinceRepository     = (*ProvinceRepo)(nil)
	_ repository.MunicipalityRepository = (*MunicipalityRepo)(nil)
	_ repository.UnitMeasureRepository  = (*UnitMeasureRepo)(nil)
)

// SupplierRepo vista de solo lectura de SupplierRepository sobre el Store.
type SupplierRepo struct {
	s *Store
}

// NewSupplierRepository construye la vista de proveedores.
func NewSupplierRepository(s *Store) *SupplierRepo {
	return &SupplierRepo{s: s}
}

// FindByCode obtiene un proveedor por código.
func (r *SupplierRepo) FindByCode(code string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sup, nil
}

// FindAll lista todos los proveedores ordenados por código.
func (r *SupplierRepo) FindAll() ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Supplier
	for _, code := range sortedKeys(r.s.suppliers) {
		sup := r.s.suppliers[code]
		list = append(list, &sup)
	}
	return list, nil
}

// FindByMunicipality lista los proveedores de un municipio.
func (r *SupplierRepo) FindByMunicipality(provinceCode, municipalityNum string) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Supplier
	for _, code := range sortedKeys(r.s.suppliers) {
		sup := r.s.suppliers[code]
		if sup.ProvinceCode == provinceCode && sup.MunicipalityNum == municipalityNum {
			list = append(list, &sup)
		}
	}
	return list, nil
}

// ProvinceRepo vista de solo lectura de ProvinceRepository sobre el Store.
type ProvinceRepo struct {
	s *Store
}

// NewProvinceRepository construye la vista de provincias.
func NewProvinceRepository(s *Store) *ProvinceRepo {
	return &ProvinceRepo{s: s}
}

// FindByCode obtiene una provincia por código.
func (r *ProvinceRepo) FindByCode(code string) (*entity.Province, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.provinces[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// FindAll lista todas las provincias.
func (r *ProvinceRepo) FindAll() ([]*entity.Province, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Province
	for _, code := range sortedKeys(r.s.provinces) {
		p := r.s.provinces[code]
		list = append(list, &p)
	}
	return list, nil
}

// MunicipalityRepo vista de solo lectura de MunicipalityRepository sobre el Store.
type MunicipalityRepo struct {
	s *Store
}

// NewMunicipalityRepository construye la vista de municipios.
func NewMunicipalityRepository(s *Store) *MunicipalityRepo {
	return &MunicipalityRepo{s: s}
}

// Find obtiene un municipio por su clave compuesta.
func (r *MunicipalityRepo) Find(provinceCode, number string) (*entity.Municipality, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.municipalities[muniKey(provinceCode, number)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// FindByProvince lista los municipios de una provincia.
func (r *MunicipalityRepo) FindByProvince(provinceCode string) ([]*entity.Municipality, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Municipality
	for _, key := range sortedKeys(r.s.municipalities) {
		m := r.s.municipalities[key]
		if m.ProvinceCode == provinceCode {
			list = append(list, &m)
		}
	}
	return list, nil
}

// FindAll lista todos los municipios.
func (r *MunicipalityRepo) FindAll() ([]*entity.Municipality, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Municipality
	for _, key := range sortedKeys(r.s.municipalities) {
		m := r.s.municipalities[key]
		list = append(list, &m)
	}
	return list, nil
}

// UnitMeasureRepo vista de solo lectura de UnitMeasureRepository sobre el Store.
type UnitMeasureRepo struct {
	s *Store
}

// NewUnitMeasureRepository construye la vista de unidades de medida.
func NewUnitMeasureRepository(s *Store) *UnitMeasureRepo {
	return &UnitMeasureRepo{s: s}
}

// FindByCode obtiene una unidad de medida por código.
func (r *UnitMeasureRepo) FindByCode(code string) (*entity.UnitMeasure, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.units[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// FindAll lista todas las unidades de medida.
func (r *UnitMeasureRepo) FindAll() ([]*entity.UnitMeasure, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.UnitMeasure
	for _, code := range sortedKeys(r.s.units) {
		u := r.s.units[code]
		list = append(list, &u)
	}
	return list, nil
}
