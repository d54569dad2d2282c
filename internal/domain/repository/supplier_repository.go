package repository

import "github.com/adomenech/cataleg/internal/domain/entity"

// SupplierRepository define el puerto de lectura para proveidor.
// Datos maestros: la aplicación no los modifica tras la carga inicial.
type SupplierRepository interface {
	FindByCode(code string) (*entity.Supplier, error)
	FindAll() ([]*entity.Supplier, error)
	FindByMunicipality(provinceCode, municipalityNum string) ([]*entity.Supplier, error)
}
