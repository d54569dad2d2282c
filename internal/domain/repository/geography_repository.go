package repository

import "github.com/adomenech/cataleg/internal/domain/entity"

// ProvinceRepository define el puerto de lectura para provincia (datos maestros).
type ProvinceRepository interface {
	FindByCode(code string) (*entity.Province, error)
	FindAll() ([]*entity.Province, error)
}

// MunicipalityRepository define el puerto de lectura para municipi.
// La identidad es compuesta: (mu_pv_codi, mu_num).
type MunicipalityRepository interface {
	Find(provinceCode, number string) (*entity.Municipality, error)
	FindByProvince(provinceCode string) ([]*entity.Municipality, error)
	FindAll() ([]*entity.Municipality, error)
}
