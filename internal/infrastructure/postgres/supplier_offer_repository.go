package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.SupplierOfferRepository = (*SupplierOfferRepo)(nil)

// SupplierOfferRepo implementación de SupplierOfferRepository sobre PostgreSQL.
// Escribir por aquí sin recalcular cm_preu_mig en la misma tx rompe la
// invariante del precio medio: usar siempre OfferService.
type SupplierOfferRepo struct {
	q Querier
}

// NewSupplierOfferRepository construye el adaptador de ofertas. Pasar pool o tx (Querier).
func NewSupplierOfferRepository(q Querier) *SupplierOfferRepo {
	return &SupplierOfferRepo{q: q}
}

// Create inserta una oferta proveedor-componente.
func (r *SupplierOfferRepo) Create(o *entity.SupplierOffer) error {
	query := `
		INSERT INTO prov_comp (pc_cm_codi, pc_pv_codi, pc_preu)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, o.ComponentCode, o.SupplierCode, o.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("insert prov_comp: %w", err)
	}
	return nil
}

// UpdatePrice cambia el precio de una oferta existente.
func (r *SupplierOfferRepo) UpdatePrice(componentCode, supplierCode string, price decimal.Decimal) error {
	query := `
		UPDATE prov_comp SET pc_preu = $3
		WHERE pc_cm_codi = $1 AND pc_pv_codi = $2`
	cmd, err := r.q.Exec(context.Background(), query, componentCode, supplierCode, price)
	if err != nil {
		return fmt.Errorf("update prov_comp: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una oferta por clave compuesta.
func (r *SupplierOfferRepo) Delete(componentCode, supplierCode string) error {
	query := `DELETE FROM prov_comp WHERE pc_cm_codi = $1 AND pc_pv_codi = $2`
	cmd, err := r.q.Exec(context.Background(), query, componentCode, supplierCode)
	if err != nil {
		return fmt.Errorf("delete prov_comp: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Find obtiene una oferta por clave compuesta.
func (r *SupplierOfferRepo) Find(componentCode, supplierCode string) (*entity.SupplierOffer, error) {
	query := `
		SELECT pc_cm_codi, pc_pv_codi, pc_preu
		FROM prov_comp WHERE pc_cm_codi = $1 AND pc_pv_codi = $2`
	var o entity.SupplierOffer
	err := r.q.QueryRow(context.Background(), query, componentCode, supplierCode).
		Scan(&o.ComponentCode, &o.SupplierCode, &o.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get prov_comp: %w", err)
	}
	return &o, nil
}

// FindByComponent lista las ofertas de un componente ordenadas por proveedor.
func (r *SupplierOfferRepo) FindByComponent(componentCode string) ([]*entity.SupplierOffer, error) {
	query := `
		SELECT pc_cm_codi, pc_pv_codi, pc_preu
		FROM prov_comp WHERE pc_cm_codi = $1
		ORDER BY pc_pv_codi`
	return r.queryOffers(query, componentCode)
}

// FindBySupplier lista las ofertas de un proveedor ordenadas por componente.
func (r *SupplierOfferRepo) FindBySupplier(supplierCode string) ([]*entity.SupplierOffer, error) {
	query := `
		SELECT pc_cm_codi, pc_pv_codi, pc_preu
		FROM prov_comp WHERE pc_pv_codi = $1
		ORDER BY pc_cm_codi`
	return r.queryOffers(query, supplierCode)
}

func (r *SupplierOfferRepo) queryOffers(query string, args ...any) ([]*entity.SupplierOffer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prov_comp: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierOffer
	for rows.Next() {
		var o entity.SupplierOffer
		if err := rows.Scan(&o.ComponentCode, &o.SupplierCode, &o.Price); err != nil {
			return nil, fmt.Errorf("scan prov_comp: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
