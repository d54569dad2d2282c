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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de solo lectura de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierSelect = `
	SELECT pv_codi, pv_cif, pv_rao_social, pv_lin_adre_fac,
	       pv_persona_contacte, pv_telef_contacte, pv_mu_pr_codi, pv_mu_num
	FROM proveidor`

// FindByCode obtiene un proveedor por código.
func (r *SupplierRepo) FindByCode(code string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(context.Background(), supplierSelect+` WHERE pv_codi = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get proveidor: %w", err)
	}
	return s, nil
}

// FindAll lista todos los proveedores ordenados por código.
func (r *SupplierRepo) FindAll() ([]*entity.Supplier, error) {
	return r.querySuppliers(supplierSelect + ` ORDER BY pv_codi`)
}

// FindByMunicipality lista los proveedores de un municipio (clave compuesta).
func (r *SupplierRepo) FindByMunicipality(provinceCode, municipalityNum string) ([]*entity.Supplier, error) {
	query := supplierSelect + ` WHERE pv_mu_pr_codi = $1 AND pv_mu_num = $2 ORDER BY pv_codi`
	return r.querySuppliers(query, provinceCode, municipalityNum)
}

func (r *SupplierRepo) querySuppliers(query string, args ...any) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list proveidors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveidor: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var (
		s                                      entity.Supplier
		addr, contact, phone, provCode, muNum *string
	)
	if err := row.Scan(&s.Code, &s.TaxID, &s.LegalName, &addr, &contact, &phone, &provCode, &muNum); err != nil {
		return nil, err
	}
	if addr != nil {
		s.BillingAddress = *addr
	}
	if contact != nil {
		s.ContactPerson = *contact
	}
	if phone != nil {
		s.ContactPhone = *phone
	}
	if provCode != nil {
		s.ProvinceCode = *provCode
	}
	if muNum != nil {
		s.MunicipalityNum = *muNum
	}
	return &s, nil
}
