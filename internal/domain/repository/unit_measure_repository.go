package repository

import "github.com/adomenech/cataleg/internal/domain/entity"

// UnitMeasureRepository define el puerto de lectura para unitat_mesura (datos maestros).
type UnitMeasureRepository interface {
	FindByCode(code string) (*entity.UnitMeasure, error)
	FindAll() ([]*entity.UnitMeasure, error)
}
