package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var (
	_ repository.ProvinceRepository     = (*ProvinceRepo)(nil)
	_ repository.MunicipalityRepository = (*MunicipalityRepo)(nil)
)

// ProvinceRepo implementación de solo lectura de ProvinceRepository sobre PostgreSQL.
type ProvinceRepo struct {
	q Querier
}

// NewProvinceRepository construye el adaptador de provincias. Pasar pool o tx (Querier).
func NewProvinceRepository(q Querier) *ProvinceRepo {
	return &ProvinceRepo{q: q}
}

// FindByCode obtiene una provincia por código.
func (r *ProvinceRepo) FindByCode(code string) (*entity.Province, error) {
	var p entity.Province
	err := r.q.QueryRow(context.Background(),
		`SELECT pv_codi, pv_nom FROM provincia WHERE pv_codi = $1`, code).
		Scan(&p.Code, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get provincia: %w", err)
	}
	return &p, nil
}

// FindAll lista todas las provincias ordenadas por nombre.
func (r *ProvinceRepo) FindAll() ([]*entity.Province, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT pv_codi, pv_nom FROM provincia ORDER BY pv_nom`)
	if err != nil {
		return nil, fmt.Errorf("list provincies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Province
	for rows.Next() {
		var p entity.Province
		if err := rows.Scan(&p.Code, &p.Name); err != nil {
			return nil, fmt.Errorf("scan provincia: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MunicipalityRepo implementación de solo lectura de MunicipalityRepository sobre PostgreSQL.
type MunicipalityRepo struct {
	q Querier
}

// NewMunicipalityRepository construye el adaptador de municipios. Pasar pool o tx (Querier).
func NewMunicipalityRepository(q Querier) *MunicipalityRepo {
	return &MunicipalityRepo{q: q}
}

// Find obtiene un municipio por su clave compuesta (provincia, número).
func (r *MunicipalityRepo) Find(provinceCode, number string) (*entity.Municipality, error) {
	var m entity.Municipality
	err := r.q.QueryRow(context.Background(),
		`SELECT mu_pv_codi, mu_num, mu_nom FROM municipi WHERE mu_pv_codi = $1 AND mu_num = $2`,
		provinceCode, number).
		Scan(&m.ProvinceCode, &m.Number, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get municipi: %w", err)
	}
	return &m, nil
}

// FindByProvince lista los municipios de una provincia.
func (r *MunicipalityRepo) FindByProvince(provinceCode string) ([]*entity.Municipality, error) {
	return r.queryMunicipalities(
		`SELECT mu_pv_codi, mu_num, mu_nom FROM municipi WHERE mu_pv_codi = $1 ORDER BY mu_num`,
		provinceCode)
}

// FindAll lista todos los municipios.
func (r *MunicipalityRepo) FindAll() ([]*entity.Municipality, error) {
	return r.queryMunicipalities(
		`SELECT mu_pv_codi, mu_num, mu_nom FROM municipi ORDER BY mu_pv_codi, mu_num`)
}

func (r *MunicipalityRepo) queryMunicipalities(query string, args ...any) ([]*entity.Municipality, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list municipis: %w", err)
	}
	defer rows.Close()
	var list []*entity.Municipality
	for rows.Next() {
		var m entity.Municipality
		if err := rows.Scan(&m.ProvinceCode, &m.Number, &m.Name); err != nil {
			return nil, fmt.Errorf("scan municipi: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
